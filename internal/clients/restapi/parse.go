package restapi

import (
	"encoding/json"
	"fmt"

	model "refashion/internal/models"
	"refashion/internal/refashionerrors"
)

// LoginShape names which of the accepted login response layouts was received
type LoginShape string

const (
	ShapeToken       LoginShape = "token"        // {"token": "...", "user": {...}}
	ShapeAccessToken LoginShape = "access_token" // {"access_token": "...", "user": {...}}
	ShapeJWT         LoginShape = "jwt"          // {"jwt": "...", "user": {...}}
	ShapeEnvelope    LoginShape = "envelope"     // {"data": {"token": "...", "user": {...}}}
)

// LoginResult is a parsed login response
type LoginResult struct {
	Shape LoginShape
	Token string
	User  model.User
}

// ParseLogin decodes a login response. Exactly one known layout must match; anything else,
// including a layout with a missing or empty user, is rejected with ErrUnrecognizedResponse.
func ParseLogin(body []byte) (LoginResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return LoginResult{}, fmt.Errorf("restapi: login: %w", refashionerrors.ErrUnrecognizedResponse)
	}

	var (
		shape    LoginShape
		tokenRaw json.RawMessage
		userRaw  json.RawMessage
		matches  int
	)
	for _, candidate := range []LoginShape{ShapeToken, ShapeAccessToken, ShapeJWT} {
		if raw, ok := fields[string(candidate)]; ok {
			shape, tokenRaw, userRaw = candidate, raw, fields["user"]
			matches++
		}
	}
	if data, ok := fields["data"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(data, &inner); err == nil {
			if raw, ok := inner["token"]; ok {
				shape, tokenRaw, userRaw = ShapeEnvelope, raw, inner["user"]
				matches++
			}
		}
	}
	if matches != 1 {
		return LoginResult{}, fmt.Errorf("restapi: login: %w - %d token fields", refashionerrors.ErrUnrecognizedResponse, matches)
	}

	var token string
	if err := json.Unmarshal(tokenRaw, &token); err != nil || token == "" {
		return LoginResult{}, fmt.Errorf("restapi: login: %w - token is not a string", refashionerrors.ErrUnrecognizedResponse)
	}

	user, err := parseUser(userRaw)
	if err != nil {
		return LoginResult{}, fmt.Errorf("restapi: login: %w", err)
	}

	return LoginResult{Shape: shape, Token: token, User: user}, nil
}

// parseUser decodes a user object that carries at least an id or an email
func parseUser(raw []byte) (model.User, error) {
	if len(raw) == 0 {
		return model.User{}, fmt.Errorf("%w - missing user", refashionerrors.ErrUnrecognizedResponse)
	}

	var payload struct {
		ID     json.RawMessage `json:"id"`
		Email  string          `json:"email"`
		Name   string          `json:"name"`
		Guest  bool            `json:"guest"`
		Points *int            `json:"points"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.User{}, fmt.Errorf("%w - user is not an object", refashionerrors.ErrUnrecognizedResponse)
	}

	user := model.User{Email: payload.Email, Name: payload.Name, Guest: payload.Guest, Points: payload.Points}
	if len(payload.ID) > 0 && string(payload.ID) != "null" {
		var id string
		if json.Unmarshal(payload.ID, &id) != nil {
			// numeric ids are kept in their JSON spelling
			id = string(payload.ID)
		}
		user.ID = id
	}
	if user.ID == "" && user.Email == "" {
		return model.User{}, fmt.Errorf("%w - user has neither id nor email", refashionerrors.ErrUnrecognizedResponse)
	}
	return user, nil
}

// parseItems accepts either a JSON array of listings or an object with an "items" array
func parseItems(body []byte) ([]model.Listing, error) {
	var items []model.Listing
	if err := json.Unmarshal(body, &items); err == nil {
		if items == nil {
			items = []model.Listing{}
		}
		return items, nil
	}

	var wrapped struct {
		Items *[]model.Listing `json:"items"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil || wrapped.Items == nil {
		return nil, fmt.Errorf("restapi: get items: %w", refashionerrors.ErrUnrecognizedResponse)
	}
	return *wrapped.Items, nil
}
