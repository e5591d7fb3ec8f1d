// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package models

import "time"

// PostType distinguishes listings made by startups from seed deals brought by consultants.
type PostType string

const (
	PostTypeStartup PostType = "startup"
	PostTypeSeed    PostType = "seed"
)

// InvestmentType is the instrument offered in a post.
type InvestmentType string

const (
	InvestmentEquity InvestmentType = "equity"
	InvestmentDebt   InvestmentType = "debt"
)

// DefaultConsultant is shown on posts that no consultant has claimed.
const DefaultConsultant = "StartupVista"

// PostTypeForRole returns the post type a creator with the given role publishes.
func PostTypeForRole(r Role) PostType {
	switch r {
	case RoleConsultant:
		return PostTypeSeed
	case RoleStartup, RoleInvestor:
		return PostTypeStartup
	default:
		return PostTypeStartup
	}
}

// PostDocuments links the pitch material attached to a post.
type PostDocuments struct {
	OnePager  string `json:"onePager,omitempty" validate:"omitempty,url"`
	PitchDeck string `json:"pitchDeck,omitempty" validate:"omitempty,url"`
}

// Answer is an investor's reply to one screening question.
type Answer struct {
	Question string `json:"question" validate:"required,max=500"`
	Answer   string `json:"answer" validate:"max=5000"`
}

// Interest records that an investor wants to hear more about a post.
type Interest struct {
	InvestorID string    `json:"investorId"`
	Answers    []Answer  `json:"answers,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Post is a funding opportunity listed on the marketplace.
type Post struct {
	ID                  string         `json:"id"`
	CreatedBy           string         `json:"createdBy"`
	PostType            PostType       `json:"postType"`
	CompanyName         string         `json:"companyName"`
	Logo                string         `json:"logo,omitempty"`
	Consultant          string         `json:"consultant"`
	Sector              string         `json:"sector"`
	InvestmentAmount    float64        `json:"investmentAmount"`
	InvestmentType      InvestmentType `json:"investmentType"`
	EquityPercentage    float64        `json:"equityPercentage,omitempty"`
	Description         string         `json:"description,omitempty"`
	Documents           PostDocuments  `json:"documents"`
	InvestmentInterests []Interest     `json:"investmentInterests"`
	IsActive            bool           `json:"isActive"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

// HasInterestFrom reports whether the investor already expressed interest.
func (p *Post) HasInterestFrom(investorID string) bool {
	for _, in := range p.InvestmentInterests {
		if in.InvestorID == investorID {
			return true
		}
	}
	return false
}
