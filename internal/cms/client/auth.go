package client

import (
	"context"
	"encoding/json"
	"net/http"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	OTP string `json:"otp"`
}

// LoginResult is step one of the login handshake.
type LoginResult struct {
	MaskedEmail string
	Message     string
}

// VerifyResult is step two: the bearer token and the user profile.
type VerifyResult struct {
	Token   string
	User    json.RawMessage
	Message string
}

// Login submits credentials; on success the backend mails an OTP.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	env, err := c.doJSON(ctx, "login", http.MethodPost, LoginPath, "", loginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	return &LoginResult{MaskedEmail: env.Email, Message: env.Message}, nil
}

// VerifyOTP submits the emailed code against the backend's pending login.
func (c *Client) VerifyOTP(ctx context.Context, otp string) (*VerifyResult, error) {
	env, err := c.doJSON(ctx, "verify_otp", http.MethodPost, VerifyOTPPath, "", verifyOTPRequest{OTP: otp})
	if err != nil {
		return nil, err
	}
	if env.Token == "" {
		return nil, &APIError{Status: http.StatusOK, Message: "no token in response"}
	}
	return &VerifyResult{Token: env.Token, User: env.User, Message: env.Message}, nil
}
