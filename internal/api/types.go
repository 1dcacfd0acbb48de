package api

import "github.com/smartrecipe/backend/internal/service"

type matchRequest struct {
	Ingredients []string `json:"ingredients"`
	Dietary     []string `json:"dietary"`
	StrictMatch bool     `json:"strictMatch"`
}

type rateRequest struct {
	Rating int    `json:"rating"`
	UserID string `json:"userId"`
}

type favoriteRequest struct {
	UserID string `json:"userId"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type detectRequest struct {
	Labels []service.Detection `json:"labels"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
