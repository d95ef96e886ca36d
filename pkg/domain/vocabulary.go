package domain

import "slices"

// Role is the account role stored on a user.
type Role string

const (
	RoleClient     Role = "CLIENT"
	RoleLandlord   Role = "LANDLORD"
	RoleAgent      Role = "AGENT"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Roles lists every role in display order.
var Roles = []Role{RoleClient, RoleLandlord, RoleAgent, RoleAdmin, RoleSuperAdmin}

// SelfServiceRoles are the roles a user may pick at registration.
var SelfServiceRoles = []Role{RoleClient, RoleLandlord, RoleAgent}

func (r Role) IsAdmin() bool { return r == RoleAdmin || r == RoleSuperAdmin }

// CanPost reports whether the role may publish listings.
func (r Role) CanPost() bool {
	return r == RoleLandlord || r == RoleAgent || r.IsAdmin()
}

func (r Role) IsValid() bool { return slices.Contains(Roles, r) }

type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "UNVERIFIED"
	VerificationPending    VerificationStatus = "PENDING"
	VerificationVerified   VerificationStatus = "VERIFIED"
	VerificationRejected   VerificationStatus = "REJECTED"
)

var VerificationStatuses = []VerificationStatus{
	VerificationUnverified, VerificationPending, VerificationVerified, VerificationRejected,
}

func (v VerificationStatus) IsValid() bool { return slices.Contains(VerificationStatuses, v) }

type PropertyStatus string

const (
	PropertyAvailable        PropertyStatus = "AVAILABLE"
	PropertyRented           PropertyStatus = "RENTED"
	PropertyUnderMaintenance PropertyStatus = "UNDER_MAINTENANCE"
	PropertyUnavailable      PropertyStatus = "UNAVAILABLE"
)

var PropertyStatuses = []PropertyStatus{
	PropertyAvailable, PropertyRented, PropertyUnderMaintenance, PropertyUnavailable,
}

func (p PropertyStatus) IsValid() bool { return slices.Contains(PropertyStatuses, p) }

type PropertyType string

const (
	PropertyHouse      PropertyType = "HOUSE"
	PropertyApartment  PropertyType = "APARTMENT"
	PropertyShop       PropertyType = "SHOP"
	PropertyOffice     PropertyType = "OFFICE"
	PropertyLand       PropertyType = "LAND"
	PropertyWarehouse  PropertyType = "WAREHOUSE"
	PropertyCommercial PropertyType = "COMMERCIAL"
	PropertyIndustrial PropertyType = "INDUSTRIAL"
)

var PropertyTypes = []PropertyType{
	PropertyHouse, PropertyApartment, PropertyShop, PropertyOffice,
	PropertyLand, PropertyWarehouse, PropertyCommercial, PropertyIndustrial,
}

func (p PropertyType) IsValid() bool { return slices.Contains(PropertyTypes, p) }

type ListingType string

const (
	ListingForRent ListingType = "FOR_RENT"
	ListingForSale ListingType = "FOR_SALE"
)

var ListingTypes = []ListingType{ListingForRent, ListingForSale}

func (l ListingType) IsValid() bool { return slices.Contains(ListingTypes, l) }

type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "PENDING"
	ComplaintInProgress ComplaintStatus = "IN_PROGRESS"
	ComplaintResolved   ComplaintStatus = "RESOLVED"
	ComplaintDismissed  ComplaintStatus = "DISMISSED"
)

var ComplaintStatuses = []ComplaintStatus{
	ComplaintPending, ComplaintInProgress, ComplaintResolved, ComplaintDismissed,
}

func (c ComplaintStatus) IsValid() bool { return slices.Contains(ComplaintStatuses, c) }

// DefaultCurrency is applied to every listing.
const DefaultCurrency = "NGN"
