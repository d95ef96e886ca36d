package dashboard

import (
	"math/big"
	"sort"
	"strings"
	"time"

	id "estatehub/pkg/domain"
)

const (
	isoLayout      = "2006-01-02T15:04:05.000Z"
	dayLayout      = "2006-01-02"
	notAvailable   = "N/A"
	recentListings = 5
	topListings    = 10
	maxSafeInteger = 1<<53 - 1
	priceScale     = 100 // two decimal places
)

// raw holds the sixteen query results after isolation. Failed queries leave
// their zero value.
type raw struct {
	byRole         []GroupCount
	byVerification []GroupCount
	byStatus       []GroupCount
	byType         []GroupCount
	byListingType  []GroupCount
	pendingVerif   int64
	pendingCompl   int64
	totals         Totals
	newUsers       int64
	recentUsers    []RecentUser
	averagePrice   *big.Rat
	registrations  []time.Time
	creations      []time.Time
	activity       []UserActivity
	properties     []PropertyRecord
	users          []UserRecord
}

// assemble turns the query results into a Snapshot. It is a pure function of r.
func assemble(r *raw) *Snapshot {
	byRole := completeEnum(id.Roles, r.byRole)
	byVerification := completeEnum(id.VerificationStatuses, r.byVerification)
	byStatus := completeEnum(id.PropertyStatuses, r.byStatus)

	totalUsers := sum(byRole)
	registrations := dayTrend(r.registrations)
	creations := dayTrend(r.creations)
	engagement := engagementRows(r.activity)
	listings := propertyRows(r.properties)
	top := topPropertyRows(r.properties)

	return &Snapshot{
		UserMetrics: UserMetrics{
			TotalUsers:           totalUsers,
			TotalNonAdminUsers:   totalUsers - byRole[string(id.RoleAdmin)],
			ByRole:               byRole,
			ByVerificationStatus: byVerification,
			NewLast30Days:        toCount(r.newUsers),
			UserTableData:        userRows(r.users),
			RegistrationTrends:   registrations,
			EngagementAnalytics:  engagement,
		},
		PropertyMetrics: PropertyMetrics{
			TotalProperties:   sum(byStatus),
			ByStatus:          byStatus,
			ByType:            completeEnum(id.PropertyTypes, r.byType),
			ByListingType:     completeEnum(id.ListingTypes, r.byListingType),
			AveragePrice:      roundPrice(r.averagePrice),
			PropertyTableData: listings,
			CreationTrends:    creations,
			TopPerforming:     top,
		},
		SystemHealth: SystemHealth{
			PendingVerifications: toCount(r.pendingVerif),
			PendingComplaints:    toCount(r.pendingCompl),
		},
		Engagement: Engagement{
			TotalRatings:   toCount(r.totals.Ratings),
			TotalFavorites: toCount(r.totals.Favorites),
			TotalViews:     toCount(r.totals.Views),
		},
		RecentActivity: RecentActivity{
			RecentUsers:      recentUserRows(r.recentUsers),
			RecentProperties: listings[:min(recentListings, len(listings))],
		},
		Analytics: Analytics{
			UserGrowth:     registrations,
			PropertyGrowth: creations,
			UserEngagement: engagement,
			TopProperties:  top,
		},
	}
}

// completeEnum seeds every value of the enum with zero and overlays the
// observed counts. Keys outside the enum, including NULL, are dropped.
func completeEnum[E ~string](values []E, groups []GroupCount) map[string]int64 {
	out := make(map[string]int64, len(values))
	for _, v := range values {
		out[string(v)] = 0
	}
	for _, g := range groups {
		if _, known := out[g.Key]; known {
			out[g.Key] += toCount(g.Count)
		}
	}
	return out
}

func sum(m map[string]int64) int64 {
	var total int64
	for _, n := range m {
		total += n
	}
	return total
}

// toCount clamps a database count into the range a JSON number holds exactly.
func toCount(n int64) int64 {
	switch {
	case n < 0:
		return 0
	case n > maxSafeInteger:
		return maxSafeInteger
	}
	return n
}

// roundPrice rounds half away from zero to two decimal places. nil is 0.
func roundPrice(r *big.Rat) float64 {
	if r == nil {
		return 0
	}
	scaled := new(big.Rat).Mul(r, big.NewRat(priceScale, 1))
	num := new(big.Int).Abs(scaled.Num())
	den := scaled.Denom()

	q, m := new(big.Int).QuoRem(num, den, new(big.Int))
	if m.Lsh(m, 1).Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if scaled.Sign() < 0 {
		q.Neg(q)
	}
	f, _ := new(big.Rat).SetFrac(q, big.NewInt(priceScale)).Float64()
	return f
}

func isoTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func isoTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := isoTime(*t)
	return &s
}

// dayTrend buckets timestamps by UTC calendar day, ascending.
func dayTrend(times []time.Time) []TrendPoint {
	buckets := make(map[string]int64)
	for _, t := range times {
		buckets[t.UTC().Format(dayLayout)]++
	}
	out := make([]TrendPoint, 0, len(buckets))
	for day, n := range buckets {
		out = append(out, TrendPoint{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func displayName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

func personName(p *Person) string {
	if p == nil {
		return notAvailable
	}
	return displayName(p.FirstName, p.LastName)
}

func personID(p *Person) *string {
	if p == nil {
		return nil
	}
	s := p.ID.String()
	return &s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func location(city, state string) string {
	return city + ", " + state
}

func userRows(users []UserRecord) []UserRow {
	out := make([]UserRow, 0, len(users))
	for _, u := range users {
		row := UserRow{
			ID:                 u.ID.String(),
			Name:               displayName(u.FirstName, u.LastName),
			Email:              u.Email,
			Phone:              optional(u.Phone),
			Role:               u.Role,
			VerificationStatus: u.VerificationStatus,
			IsEmailVerified:    u.IsEmailVerified,
			LastLogin:          isoTimePtr(u.LastLogin),
			JoinDate:           isoTime(u.CreatedAt),
			PropertiesCount:    toCount(u.PropertiesPosted),
			ReviewsCount:       toCount(u.Ratings),
			FavoritesCount:     toCount(u.Favorites),
			ComplaintsCount:    toCount(u.Complaints),
			Avatar:             optional(u.AvatarURL),
			Specialties:        []string{},
		}
		if row.Email == "" {
			row.Email = notAvailable
		}
		if u.Agent != nil {
			experience := u.Agent.Experience
			row.Experience = &experience
			row.Specialties = orEmpty(u.Agent.Specialties)
		}
		if u.Verification != nil {
			row.Verification = &VerificationRow{
				Status:      u.Verification.Status,
				SubmittedAt: isoTime(u.Verification.SubmittedAt),
				ReviewedAt:  isoTimePtr(u.Verification.ReviewedAt),
			}
		}
		out = append(out, row)
	}
	return out
}

func engagementRows(activity []UserActivity) []EngagementRow {
	out := make([]EngagementRow, 0, len(activity))
	for _, a := range activity {
		out = append(out, EngagementRow{
			UserID:           a.UserID.String(),
			Role:             a.Role,
			LastActive:       isoTimePtr(a.LastLogin),
			PropertiesPosted: toCount(a.PropertiesPosted),
			ReviewsGiven:     toCount(a.Ratings),
			FavoritesAdded:   toCount(a.Favorites),
			ComplaintsFiled:  toCount(a.Complaints),
		})
	}
	return out
}

func propertyRows(properties []PropertyRecord) []PropertyRow {
	out := make([]PropertyRow, 0, len(properties))
	for _, p := range properties {
		out = append(out, PropertyRow{
			ID:            p.ID.String(),
			Title:         p.Title,
			Type:          p.Type,
			ListingType:   p.ListingType,
			Status:        p.Status,
			Price:         roundPrice(p.Price),
			Currency:      p.Currency,
			Location:      location(p.City, p.State),
			Address:       p.Address,
			Bedrooms:      p.Bedrooms,
			Bathrooms:     p.Bathrooms,
			Area:          p.Area,
			YearBuilt:     p.YearBuilt,
			ImageURLs:     orEmpty(p.ImageURLs),
			VideoURLs:     orEmpty(p.VideoURLs),
			Amenities:     orEmpty(p.Amenities),
			PostedBy:      personName(p.PostedBy),
			PostedByID:    personID(p.PostedBy),
			ManagedBy:     personName(p.ManagedBy),
			ManagedByID:   personID(p.ManagedBy),
			CreatedAt:     isoTime(p.CreatedAt),
			UpdatedAt:     isoTime(p.UpdatedAt),
			AvailableFrom: isoTimePtr(p.AvailableFrom),
			Views:         toCount(p.Views),
			Favorites:     toCount(p.Favorites),
			Ratings:       toCount(p.Ratings),
			Complaints:    toCount(p.Complaints),
			IsFeatured:    p.IsFeatured,
		})
	}
	return out
}

// topPropertyRows projects the most recent listings. properties is already
// newest first.
func topPropertyRows(properties []PropertyRecord) []TopPropertyRow {
	properties = properties[:min(topListings, len(properties))]
	out := make([]TopPropertyRow, 0, len(properties))
	for _, p := range properties {
		row := TopPropertyRow{
			ID:          p.ID.String(),
			Title:       p.Title,
			Type:        p.Type,
			ListingType: p.ListingType,
			Price:       roundPrice(p.Price),
			Currency:    p.Currency,
			Location:    location(p.City, p.State),
			PostedBy:    personName(p.PostedBy),
			Views:       toCount(p.Views),
			Favorites:   toCount(p.Favorites),
			Ratings:     toCount(p.Ratings),
			CreatedAt:   isoTime(p.CreatedAt),
			IsFeatured:  p.IsFeatured,
		}
		if p.PostedBy != nil {
			row.PostedByEmail = optional(p.PostedBy.Email)
			row.PostedByPhone = optional(p.PostedBy.Phone)
		}
		out = append(out, row)
	}
	return out
}

func recentUserRows(users []RecentUser) []RecentUserRow {
	out := make([]RecentUserRow, 0, len(users))
	for _, u := range users {
		out = append(out, RecentUserRow{
			ID:                 u.ID.String(),
			FirstName:          u.FirstName,
			LastName:           u.LastName,
			Email:              optional(u.Email),
			Phone:              optional(u.Phone),
			Role:               u.Role,
			VerificationStatus: u.VerificationStatus,
			CreatedAt:          isoTime(u.CreatedAt),
			LastLogin:          isoTimePtr(u.LastLogin),
		})
	}
	return out
}
