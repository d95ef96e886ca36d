package dashboard

// Snapshot is the admin dashboard payload. Every field is always present:
// breakdowns carry every enum key and collections are never null.
type Snapshot struct {
	UserMetrics     UserMetrics     `json:"userMetrics"`
	PropertyMetrics PropertyMetrics `json:"propertyMetrics"`
	SystemHealth    SystemHealth    `json:"systemHealth"`
	Engagement      Engagement      `json:"engagement"`
	RecentActivity  RecentActivity  `json:"recentActivity"`
	Analytics       Analytics       `json:"analytics"`
}

type UserMetrics struct {
	TotalUsers           int64            `json:"totalUsers"`
	TotalNonAdminUsers   int64            `json:"totalNonAdminUsers"`
	ByRole               map[string]int64 `json:"byRole"`
	ByVerificationStatus map[string]int64 `json:"byVerificationStatus"`
	NewLast30Days        int64            `json:"newLast30Days"`
	UserTableData        []UserRow        `json:"userTableData"`
	RegistrationTrends   []TrendPoint     `json:"registrationTrends"`
	EngagementAnalytics  []EngagementRow  `json:"engagementAnalytics"`
}

type PropertyMetrics struct {
	TotalProperties   int64            `json:"totalProperties"`
	ByStatus          map[string]int64 `json:"byStatus"`
	ByType            map[string]int64 `json:"byType"`
	ByListingType     map[string]int64 `json:"byListingType"`
	AveragePrice      float64          `json:"averagePrice"`
	PropertyTableData []PropertyRow    `json:"propertyTableData"`
	CreationTrends    []TrendPoint     `json:"creationTrends"`
	TopPerforming     []TopPropertyRow `json:"topPerforming"`
}

type SystemHealth struct {
	PendingVerifications int64 `json:"pendingVerifications"`
	PendingComplaints    int64 `json:"pendingComplaints"`
}

type Engagement struct {
	TotalRatings   int64 `json:"totalRatings"`
	TotalFavorites int64 `json:"totalFavorites"`
	TotalViews     int64 `json:"totalViews"`
}

type RecentActivity struct {
	RecentUsers      []RecentUserRow `json:"recentUsers"`
	RecentProperties []PropertyRow   `json:"recentProperties"`
}

// Analytics repeats the trend and engagement series for the charts.
type Analytics struct {
	UserGrowth     []TrendPoint     `json:"userGrowth"`
	PropertyGrowth []TrendPoint     `json:"propertyGrowth"`
	UserEngagement []EngagementRow  `json:"userEngagement"`
	TopProperties  []TopPropertyRow `json:"topProperties"`
}

// TrendPoint is one UTC calendar day. Date is formatted 2006-01-02.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type UserRow struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Email              string           `json:"email"`
	Phone              *string          `json:"phone"`
	Role               string           `json:"role"`
	VerificationStatus string           `json:"verificationStatus"`
	IsEmailVerified    bool             `json:"isEmailVerified"`
	LastLogin          *string          `json:"lastLogin"`
	JoinDate           string           `json:"joinDate"`
	PropertiesCount    int64            `json:"propertiesCount"`
	ReviewsCount       int64            `json:"reviewsCount"`
	FavoritesCount     int64            `json:"favoritesCount"`
	ComplaintsCount    int64            `json:"complaintsCount"`
	Avatar             *string          `json:"avatar"`
	Experience         *int             `json:"experience"`
	Specialties        []string         `json:"specialties"`
	Verification       *VerificationRow `json:"verification"`
}

type VerificationRow struct {
	Status      string  `json:"status"`
	SubmittedAt string  `json:"submittedAt"`
	ReviewedAt  *string `json:"reviewedAt"`
}

type EngagementRow struct {
	UserID           string  `json:"userId"`
	Role             string  `json:"role"`
	LastActive       *string `json:"lastActive"`
	PropertiesPosted int64   `json:"propertiesPosted"`
	ReviewsGiven     int64   `json:"reviewsGiven"`
	FavoritesAdded   int64   `json:"favoritesAdded"`
	ComplaintsFiled  int64   `json:"complaintsFiled"`
}

type PropertyRow struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Type          string   `json:"type"`
	ListingType   string   `json:"listingType"`
	Status        string   `json:"status"`
	Price         float64  `json:"price"`
	Currency      string   `json:"currency"`
	Location      string   `json:"location"`
	Address       string   `json:"address"`
	Bedrooms      *int     `json:"bedrooms"`
	Bathrooms     *int     `json:"bathrooms"`
	Area          *float64 `json:"area"`
	YearBuilt     *int     `json:"yearBuilt"`
	ImageURLs     []string `json:"imageUrls"`
	VideoURLs     []string `json:"videoUrls"`
	Amenities     []string `json:"amenities"`
	PostedBy      string   `json:"postedBy"`
	PostedByID    *string  `json:"postedById"`
	ManagedBy     string   `json:"managedBy"`
	ManagedByID   *string  `json:"managedById"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
	AvailableFrom *string  `json:"availableFrom"`
	Views         int64    `json:"views"`
	Favorites     int64    `json:"favorites"`
	Ratings       int64    `json:"ratings"`
	Complaints    int64    `json:"complaints"`
	IsFeatured    bool     `json:"isFeatured"`
}

type TopPropertyRow struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Type          string  `json:"type"`
	ListingType   string  `json:"listingType"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	Location      string  `json:"location"`
	PostedBy      string  `json:"postedBy"`
	PostedByEmail *string `json:"postedByEmail"`
	PostedByPhone *string `json:"postedByPhone"`
	Views         int64   `json:"views"`
	Favorites     int64   `json:"favorites"`
	Ratings       int64   `json:"ratings"`
	CreatedAt     string  `json:"createdAt"`
	IsFeatured    bool    `json:"isFeatured"`
}

type RecentUserRow struct {
	ID                 string  `json:"id"`
	FirstName          string  `json:"firstName"`
	LastName           string  `json:"lastName"`
	Email              *string `json:"email"`
	Phone              *string `json:"phone"`
	Role               string  `json:"role"`
	VerificationStatus string  `json:"verificationStatus"`
	CreatedAt          string  `json:"createdAt"`
	LastLogin          *string `json:"lastLogin"`
}
