package identity

import (
	"encoding/json"
	"fmt"
	"os"
)

// Data is the static profile document served at /identity. It is loaded once
// at startup and never mutated; a load failure is fatal because every page
// of the site depends on it.
type Data struct {
	Name            string          `json:"name"`
	Username        string          `json:"username"`
	Role            string          `json:"role"`
	Bio             string          `json:"bio"`
	Avatar          string          `json:"avatar"`
	Location        string          `json:"location"`
	Status          string          `json:"status"`
	StatusColor     string          `json:"statusColor"`
	Education       []Education     `json:"education"`
	Experience      []Experience    `json:"experience"`
	Certifications  []Certification `json:"certifications"`
	Achievements    []Achievement   `json:"achievements"`
	CareerObjective string          `json:"careerObjective"`
	Social          SocialLinks     `json:"social"`
	Resume          string          `json:"resume"`
	Skills          []string        `json:"skills"`
	Metadata        Metadata        `json:"metadata"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Year        string `json:"year,omitempty"`
	CGPA        string `json:"cgpa,omitempty"`
	Grade       string `json:"grade,omitempty"`
}

type Experience struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate,omitempty"`
	Current     bool     `json:"current,omitempty"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Roles       []Role   `json:"roles,omitempty"`
}

// Role is one position held inside a single Experience entry.
type Role struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate,omitempty"`
	Current     bool     `json:"current"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

type Certification struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Issuer        string   `json:"issuer"`
	IssueDate     string   `json:"issueDate"`
	ExpiryDate    string   `json:"expiryDate,omitempty"`
	CredentialID  string   `json:"credentialId"`
	CredentialURL string   `json:"credentialUrl,omitempty"`
	Skills        []string `json:"skills"`
	Logo          string   `json:"logo"`
}

type Achievement struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Issuer         string `json:"issuer"`
	IssueDate      string `json:"issueDate"`
	Description    string `json:"description"`
	CertificateURL string `json:"certificateUrl,omitempty"`
	Logo           string `json:"logo,omitempty"`
}

type SocialLinks struct {
	Email     string `json:"email"`
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
	Telegram  string `json:"telegram"`
	WhatsApp  string `json:"whatsapp"`
	Instagram string `json:"instagram"`
}

type Metadata struct {
	Theme       string `json:"theme"`
	AccentColor string `json:"accentColor"`
	LastUpdated string `json:"lastUpdated"`
}

// Load reads and parses the identity file. Callers treat an error here as a
// startup failure, not a recoverable condition.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read identity file: %w", err)
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse identity file %s: %w", path, err)
	}
	if data.Name == "" {
		return nil, fmt.Errorf("identity file %s: name is required", path)
	}
	return &data, nil
}
