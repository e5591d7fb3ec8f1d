// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package models

import "time"

// Founder is a member of a startup's founding team.
type Founder struct {
	Name     string `json:"name" validate:"required,max=120"`
	Role     string `json:"role,omitempty" validate:"max=120"`
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
}

// SocialLinks groups a startup's public social accounts.
type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,url"`
	Twitter   string `json:"twitter,omitempty" validate:"omitempty,url"`
	Instagram string `json:"instagram,omitempty" validate:"omitempty,url"`
	Facebook  string `json:"facebook,omitempty" validate:"omitempty,url"`
}

// StartupProfile is the profile owned by a startup account.
type StartupProfile struct {
	UserID            string      `json:"userId"`
	CompanyName       string      `json:"companyName" validate:"required,max=200"`
	Logo              string      `json:"logo,omitempty" validate:"omitempty,url"`
	EstablishmentDate *time.Time  `json:"establishmentDate,omitempty"`
	Sector            string      `json:"sector" validate:"required,max=120"`
	TeamSize          int         `json:"teamSize,omitempty" validate:"gte=0"`
	AboutCompany      string      `json:"aboutCompany,omitempty" validate:"max=5000"`
	Website           string      `json:"website,omitempty" validate:"omitempty,url"`
	AndroidApp        string      `json:"androidApp,omitempty" validate:"omitempty,url"`
	IOSApp            string      `json:"iosApp,omitempty" validate:"omitempty,url"`
	SocialLinks       SocialLinks `json:"socialLinks"`
	Founders          []Founder   `json:"founders,omitempty" validate:"dive"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// PastInvestment is a completed investment listed on an investor profile.
type PastInvestment struct {
	CompanyName string  `json:"companyName" validate:"required,max=200"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Year        int     `json:"year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
}

// Holding is a current position listed on an investor profile.
type Holding struct {
	CompanyName      string  `json:"companyName" validate:"required,max=200"`
	Amount           float64 `json:"amount" validate:"gte=0"`
	EquityPercentage float64 `json:"equityPercentage,omitempty" validate:"gte=0,lte=100"`
}

// TicketSize bounds the investment size an investor is interested in.
type TicketSize struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gte=0,gtefield=Min"`
}

// InvestmentPreferences describes what an investor looks for.
type InvestmentPreferences struct {
	TicketSize       TicketSize `json:"ticketSize"`
	PreferredSectors []string   `json:"preferredSectors,omitempty"`
}

// InvestorProfile is the profile owned by an investor account.
type InvestorProfile struct {
	UserID                string                `json:"userId"`
	PastInvestments       []PastInvestment      `json:"pastInvestments,omitempty" validate:"dive"`
	CurrentHoldings       []Holding             `json:"currentHoldings,omitempty" validate:"dive"`
	InvestmentPreferences InvestmentPreferences `json:"investmentPreferences"`
	CreatedAt             time.Time             `json:"createdAt"`
	UpdatedAt             time.Time             `json:"updatedAt"`
}

// PortfolioItem is a company a consultant has placed investment into.
type PortfolioItem struct {
	CompanyName      string  `json:"companyName" validate:"required,max=200"`
	InvestmentAmount float64 `json:"investmentAmount" validate:"gte=0"`
}

// ConsultantSummary aggregates a consultant's track record.
type ConsultantSummary struct {
	TotalInvestment     float64 `json:"totalInvestment" validate:"gte=0"`
	TotalStartupsFunded int     `json:"totalStartupsFunded" validate:"gte=0"`
}

// ConsultantVerification holds identity documents submitted for review.
type ConsultantVerification struct {
	PANCard    string `json:"panCard,omitempty" validate:"max=500"`
	AadharCard string `json:"aadharCard,omitempty" validate:"max=500"`
	IsVerified bool   `json:"isVerified"`
}

// ConsultantProfile is the profile owned by a consultant account.
type ConsultantProfile struct {
	UserID        string                 `json:"userId"`
	PastPortfolio []PortfolioItem        `json:"pastPortfolio,omitempty" validate:"dive"`
	Summary       ConsultantSummary      `json:"summary"`
	Verification  ConsultantVerification `json:"verification"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}
