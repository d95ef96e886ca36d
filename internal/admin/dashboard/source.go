package dashboard

import (
	"context"
	"math/big"
	"time"

	id "estatehub/pkg/domain"
)

// Source is the read side the aggregator fans out over. Every method is an
// independent query; implementations must be safe for concurrent use.
//
// Grouped counts are returned sparse and with raw keys. Keys are not
// validated against the enums here.
type Source interface {
	UsersByRole(ctx context.Context) ([]GroupCount, error)
	UsersByVerificationStatus(ctx context.Context) ([]GroupCount, error)
	PropertiesByStatus(ctx context.Context) ([]GroupCount, error)
	PropertiesByType(ctx context.Context) ([]GroupCount, error)
	PropertiesByListingType(ctx context.Context) ([]GroupCount, error)
	PendingVerifications(ctx context.Context) (int64, error)
	PendingComplaints(ctx context.Context) (int64, error)
	EngagementTotals(ctx context.Context) (Totals, error)
	UsersCreatedSince(ctx context.Context, since time.Time) (int64, error)
	RecentUsers(ctx context.Context, limit int) ([]RecentUser, error)
	// AveragePrice returns nil when there are no properties.
	AveragePrice(ctx context.Context) (*big.Rat, error)
	RegistrationTimes(ctx context.Context, since time.Time) ([]time.Time, error)
	PropertyCreationTimes(ctx context.Context, since time.Time) ([]time.Time, error)
	UserEngagement(ctx context.Context, roles []id.Role) ([]UserActivity, error)
	// Properties returns every property, newest first.
	Properties(ctx context.Context) ([]PropertyRecord, error)
	// Users returns every user, newest first.
	Users(ctx context.Context) ([]UserRecord, error)
}

// GroupCount is one row of a GROUP BY count. An empty Key stands for NULL.
type GroupCount struct {
	Key   string
	Count int64
}

type Totals struct {
	Ratings   int64
	Favorites int64
	Views     int64
}

type RecentUser struct {
	ID                 id.UserID
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	Role               string
	VerificationStatus string
	CreatedAt          time.Time
	LastLogin          *time.Time
}

type UserActivity struct {
	UserID           id.UserID
	Role             string
	LastLogin        *time.Time
	PropertiesPosted int64
	Ratings          int64
	Favorites        int64
	Complaints       int64
}

// Person is the poster or managing agent joined onto a property.
type Person struct {
	ID        id.UserID
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type PropertyRecord struct {
	ID            id.PropertyID
	Title         string
	Type          string
	ListingType   string
	Status        string
	Price         *big.Rat
	Currency      string
	Address       string
	City          string
	State         string
	Bedrooms      *int
	Bathrooms     *int
	Area          *float64
	YearBuilt     *int
	ImageURLs     []string
	VideoURLs     []string
	Amenities     []string
	IsFeatured    bool
	AvailableFrom *time.Time
	PostedBy      *Person
	ManagedBy     *Person
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Views         int64
	Favorites     int64
	Ratings       int64
	Complaints    int64
}

// AgentProfile is present only for users that have one.
type AgentProfile struct {
	Experience  int
	Specialties []string
}

// VerificationInfo summarizes the user's latest verification request.
type VerificationInfo struct {
	Status      string
	SubmittedAt time.Time
	ReviewedAt  *time.Time
}

type UserRecord struct {
	ID                 id.UserID
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	Role               string
	VerificationStatus string
	IsEmailVerified    bool
	AvatarURL          string
	LastLogin          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Agent              *AgentProfile
	Verification       *VerificationInfo
	PropertiesPosted   int64
	Ratings            int64
	Favorites          int64
	Complaints         int64
}
