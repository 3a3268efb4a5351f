package lead

import (
	"time"

	"github.com/google/uuid"
	"github.com/riya0704/LeadTrak/internal/domain/shared"
)

// City is the enumerated set of serviced cities
type City string

const (
	CityChandigarh City = "Chandigarh"
	CityMohali     City = "Mohali"
	CityZirakpur   City = "Zirakpur"
	CityPanchkula  City = "Panchkula"
	CityOther      City = "Other"
)

// CityOptions lists all valid cities
var CityOptions = []City{CityChandigarh, CityMohali, CityZirakpur, CityPanchkula, CityOther}

// IsValid returns true if the city is a known option
func (c City) IsValid() bool {
	for _, o := range CityOptions {
		if c == o {
			return true
		}
	}
	return false
}

// PropertyType is the enumerated set of property types
type PropertyType string

const (
	PropertyApartment PropertyType = "Apartment"
	PropertyVilla     PropertyType = "Villa"
	PropertyPlot      PropertyType = "Plot"
	PropertyOffice    PropertyType = "Office"
	PropertyRetail    PropertyType = "Retail"
)

// PropertyTypeOptions lists all valid property types
var PropertyTypeOptions = []PropertyType{PropertyApartment, PropertyVilla, PropertyPlot, PropertyOffice, PropertyRetail}

// IsValid returns true if the property type is a known option
func (p PropertyType) IsValid() bool {
	for _, o := range PropertyTypeOptions {
		if p == o {
			return true
		}
	}
	return false
}

// IsResidential returns true for property types that require a BHK value
func (p PropertyType) IsResidential() bool {
	return p == PropertyApartment || p == PropertyVilla
}

// BHK is the bedroom-hall-kitchen sizing classifier for residential properties
type BHK string

const (
	BHK1      BHK = "1"
	BHK2      BHK = "2"
	BHK3      BHK = "3"
	BHK4      BHK = "4"
	BHKStudio BHK = "Studio"
)

// BHKOptions lists all valid BHK values
var BHKOptions = []BHK{BHK1, BHK2, BHK3, BHK4, BHKStudio}

// IsValid returns true if the BHK is a known option
func (b BHK) IsValid() bool {
	for _, o := range BHKOptions {
		if b == o {
			return true
		}
	}
	return false
}

// Purpose is the enumerated buy/rent intent
type Purpose string

const (
	PurposeBuy  Purpose = "Buy"
	PurposeRent Purpose = "Rent"
)

// PurposeOptions lists all valid purposes
var PurposeOptions = []Purpose{PurposeBuy, PurposeRent}

// IsValid returns true if the purpose is a known option
func (p Purpose) IsValid() bool {
	return p == PurposeBuy || p == PurposeRent
}

// Timeline is the enumerated purchase horizon
type Timeline string

const (
	TimelineZeroToThree Timeline = "0-3m"
	TimelineThreeToSix  Timeline = "3-6m"
	TimelineOverSix     Timeline = ">6m"
	TimelineExploring   Timeline = "Exploring"
)

// TimelineOptions lists all valid timelines
var TimelineOptions = []Timeline{TimelineZeroToThree, TimelineThreeToSix, TimelineOverSix, TimelineExploring}

// IsValid returns true if the timeline is a known option
func (t Timeline) IsValid() bool {
	for _, o := range TimelineOptions {
		if t == o {
			return true
		}
	}
	return false
}

// Source is the enumerated acquisition channel
type Source string

const (
	SourceWebsite  Source = "Website"
	SourceReferral Source = "Referral"
	SourceWalkIn   Source = "Walk-in"
	SourceCall     Source = "Call"
	SourceOther    Source = "Other"
)

// SourceOptions lists all valid sources
var SourceOptions = []Source{SourceWebsite, SourceReferral, SourceWalkIn, SourceCall, SourceOther}

// IsValid returns true if the source is a known option
func (s Source) IsValid() bool {
	for _, o := range SourceOptions {
		if s == o {
			return true
		}
	}
	return false
}

// Status is the enumerated pipeline stage of a lead
type Status string

const (
	StatusNew         Status = "New"
	StatusQualified   Status = "Qualified"
	StatusContacted   Status = "Contacted"
	StatusVisited     Status = "Visited"
	StatusNegotiation Status = "Negotiation"
	StatusConverted   Status = "Converted"
	StatusDropped     Status = "Dropped"
)

// StatusOptions lists all valid statuses
var StatusOptions = []Status{StatusNew, StatusQualified, StatusContacted, StatusVisited, StatusNegotiation, StatusConverted, StatusDropped}

// IsValid returns true if the status is a known option
func (s Status) IsValid() bool {
	for _, o := range StatusOptions {
		if s == o {
			return true
		}
	}
	return false
}

// Lead represents a prospective property buyer record.
// It is the aggregate root for lead-related operations; all mutation goes
// through the update pipeline in the application layer.
type Lead struct {
	shared.BaseAggregateRoot
	FullName     string
	Email        string
	Phone        string
	City         City
	PropertyType PropertyType
	BHK          *BHK
	Purpose      Purpose
	BudgetMin    *int64
	BudgetMax    *int64
	Timeline     Timeline
	Source       Source
	Status       Status
	Notes        string
	Tags         []string
	OwnerID      uuid.UUID
}

// New builds a Lead from an already-validated candidate with fresh identity,
// timestamps and the given owner.
func New(c Candidate, ownerID uuid.UUID) *Lead {
	l := &Lead{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
	}
	l.apply(c)
	return l
}

// Apply copies every candidate field except the identity onto the lead,
// refreshes the timestamp and bumps the version. The candidate must have been
// validated first.
func (l *Lead) Apply(c Candidate) {
	l.apply(c)
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

func (l *Lead) apply(c Candidate) {
	l.FullName = c.FullName
	l.Email = c.Email
	l.Phone = c.Phone
	l.City = c.City
	l.PropertyType = c.PropertyType
	l.BHK = c.BHK
	l.Purpose = c.Purpose
	l.BudgetMin = c.BudgetMin
	l.BudgetMax = c.BudgetMax
	l.Timeline = c.Timeline
	l.Source = c.Source
	l.Status = c.Status
	l.Notes = c.Notes
	l.Tags = c.Tags
	if c.OwnerID != uuid.Nil {
		l.OwnerID = c.OwnerID
	}
}

// Candidate is an unvalidated lead payload submitted for create, update or
// import. Optional fields are pointers so that "not set" stays distinct from
// zero values.
type Candidate struct {
	ID           *uuid.UUID
	FullName     string
	Email        string
	Phone        string
	City         City
	PropertyType PropertyType
	BHK          *BHK
	Purpose      Purpose
	BudgetMin    *int64
	BudgetMax    *int64
	Timeline     Timeline
	Source       Source
	Status       Status
	Notes        string
	Tags         []string
	OwnerID      uuid.UUID

	// KnownUpdatedAt is the record timestamp the caller last saw. It is used
	// only for the server-side staleness comparison, never as the new value.
	KnownUpdatedAt *time.Time
}

// Normalize applies defaults that are not validation concerns
func (c *Candidate) Normalize() {
	if c.Status == "" {
		c.Status = StatusNew
	}
}
