package repository

import (
	"time"

	"gorm.io/gorm"

	"tastebook/internal/domain"
)

// Row models mirror the storage schema. Storage naming stays behind
// this package: every repository maps rows to the canonical domain
// types before returning them.

type venueRow struct {
	ID            string    `gorm:"column:id;primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	Address       string    `gorm:"column:address;not null"`
	PriceTier     int       `gorm:"column:price_tier;not null"`
	AverageRating *float64  `gorm:"column:average_rating"`
	OwnerID       string    `gorm:"column:user_id;index"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Photos  []photoRow  `gorm:"foreignKey:VenueID"`
	Reviews []reviewRow `gorm:"foreignKey:VenueID"`
}

func (venueRow) TableName() string { return "venues" }

type reviewRow struct {
	ID        string    `gorm:"column:id;primaryKey"`
	VenueID   string    `gorm:"column:venue_id;index;not null"`
	AuthorID  string    `gorm:"column:user_id;index"`
	Rating    int       `gorm:"column:rating;not null"`
	Message   string    `gorm:"column:message;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Dishes []dishRow   `gorm:"foreignKey:ReviewID"`
	Photos []photoRow  `gorm:"foreignKey:ReviewID"`
	Author *profileRow `gorm:"foreignKey:AuthorID;references:ID"`
}

func (reviewRow) TableName() string { return "reviews" }

type dishRow struct {
	ID       string   `gorm:"column:id;primaryKey"`
	ReviewID string   `gorm:"column:review_id;index;not null"`
	Name     string   `gorm:"column:name;not null"`
	Price    *float64 `gorm:"column:price"`
}

func (dishRow) TableName() string { return "dishes" }

type photoRow struct {
	ID         string    `gorm:"column:id;primaryKey"`
	VenueID    *string   `gorm:"column:venue_id;index"`
	ReviewID   *string   `gorm:"column:review_id;index"`
	UploaderID string    `gorm:"column:user_id"`
	ObjectKey  string    `gorm:"column:object_key"`
	URL        string    `gorm:"column:url;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (photoRow) TableName() string { return "photos" }

type favoriteRow struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id;not null;uniqueIndex:idx_user_venue"`
	VenueID   string    `gorm:"column:venue_id;not null;uniqueIndex:idx_user_venue"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (favoriteRow) TableName() string { return "favorites" }

type userRow struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (userRow) TableName() string { return "users" }

type profileRow struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;not null"`
	AvatarURL *string   `gorm:"column:avatar_url"`
	IsAdmin   bool      `gorm:"column:is_admin;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (profileRow) TableName() string { return "profiles" }

// AutoMigrate creates the schema for all tables in dependency order.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userRow{},
		&profileRow{},
		&venueRow{},
		&reviewRow{},
		&dishRow{},
		&photoRow{},
		&favoriteRow{},
	)
}

func toDomainVenue(m venueRow) domain.Venue {
	v := domain.Venue{
		ID:            m.ID,
		Name:          m.Name,
		Address:       m.Address,
		PriceTier:     m.PriceTier,
		AverageRating: m.AverageRating,
		OwnerID:       m.OwnerID,
		Photos:        photoURLs(m.Photos),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	for _, r := range m.Reviews {
		v.Reviews = append(v.Reviews, toDomainReview(r))
	}
	return v
}

func toVenueRow(v *domain.Venue) venueRow {
	return venueRow{
		ID:            v.ID,
		Name:          v.Name,
		Address:       v.Address,
		PriceTier:     v.PriceTier,
		AverageRating: v.AverageRating,
		OwnerID:       v.OwnerID,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func toDomainReview(m reviewRow) domain.Review {
	r := domain.Review{
		ID:        m.ID,
		VenueID:   m.VenueID,
		AuthorID:  m.AuthorID,
		Rating:    m.Rating,
		Message:   m.Message,
		Photos:    photoURLs(m.Photos),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for _, d := range m.Dishes {
		r.Dishes = append(r.Dishes, toDomainDish(d))
	}
	if m.Author != nil {
		p := toDomainProfile(*m.Author)
		r.Author = p.Summary()
	}
	return r
}

func toDomainDish(m dishRow) domain.Dish {
	return domain.Dish{ID: m.ID, ReviewID: m.ReviewID, Name: m.Name, Price: m.Price}
}

func toDomainPhoto(m photoRow) domain.Photo {
	return domain.Photo{
		ID:         m.ID,
		VenueID:    m.VenueID,
		ReviewID:   m.ReviewID,
		UploaderID: m.UploaderID,
		ObjectKey:  m.ObjectKey,
		URL:        m.URL,
		CreatedAt:  m.CreatedAt,
	}
}

func toDomainFavorite(m favoriteRow) domain.Favorite {
	return domain.Favorite{ID: m.ID, UserID: m.UserID, VenueID: m.VenueID, CreatedAt: m.CreatedAt}
}

func toDomainUser(m userRow) domain.User {
	return domain.User{ID: m.ID, Email: m.Email, PasswordHash: m.PasswordHash, CreatedAt: m.CreatedAt}
}

func toDomainProfile(m profileRow) domain.Profile {
	return domain.Profile{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		AvatarURL: m.AvatarURL,
		IsAdmin:   m.IsAdmin,
		CreatedAt: m.CreatedAt,
	}
}

func photoURLs(rows []photoRow) []string {
	urls := make([]string, 0, len(rows))
	for _, p := range rows {
		urls = append(urls, p.URL)
	}
	return urls
}
