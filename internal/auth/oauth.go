package auth

import (
	"golang.org/x/oauth2"

	"fittrack/internal/strava"
)

const (
	// Strava OAuth endpoints
	AuthURL  = "https://www.strava.com/oauth/authorize"
	TokenURL = "https://www.strava.com/oauth/token"
)

// Scopes required for activity import (Strava uses comma-separated scopes)
var Scopes = []string{
	"activity:read_all,profile:read_all",
}

// Config holds the OAuth client credentials
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g., "http://localhost:8723/callback"
}

// NewOAuthConfig creates an oauth2.Config from our Config
func NewOAuthConfig(cfg Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  AuthURL,
			TokenURL: TokenURL,
		},
		RedirectURL: cfg.RedirectURL,
		Scopes:      Scopes,
	}
}

// ExtractAthlete pulls the athlete identity out of the token extras.
// Strava includes the athlete object in the code-exchange response but
// not reliably in refresh responses.
func ExtractAthlete(token *oauth2.Token) strava.Athlete {
	var athlete strava.Athlete
	extra, ok := token.Extra("athlete").(map[string]interface{})
	if !ok {
		return athlete
	}
	if id, ok := extra["id"].(float64); ok {
		athlete.ID = int64(id)
	}
	if first, ok := extra["firstname"].(string); ok {
		athlete.Firstname = first
	}
	if last, ok := extra["lastname"].(string); ok {
		athlete.Lastname = last
	}
	return athlete
}
