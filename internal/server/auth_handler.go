package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/shramsaathi/marketplace/internal/auth"
	"github.com/shramsaathi/marketplace/internal/types"
)

// AuthHandler handles the OTP authentication endpoints.
type AuthHandler struct {
	otpService *auth.OTPService
	jwtService *JWTService
	validator  *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(otpService *auth.OTPService, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		otpService: otpService,
		jwtService: jwtService,
		validator:  validator.New(),
	}
}

// RequestOTP issues a one-time code for a phone+role pair. The code itself
// goes to the SMS gateway, never into the response body.
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req types.RequestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	code, err := h.otpService.RequestCode(req.Phone, req.Role)
	if err != nil {
		http.Error(w, "Failed to issue code", http.StatusInternalServerError)
		return
	}
	h.deliverCode(req.Phone, code)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(map[string]string{"message": "Code sent"}); err != nil {
		// Log error but response already sent
		return
	}
}

// VerifyOTP exchanges a one-time code for a signed session token.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req types.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	if err := h.otpService.VerifyCode(req.Phone, req.Role, req.Code); err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(req.Phone, req.Role)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	response := types.SessionResponse{
		Token:     token,
		Role:      req.Role,
		ExpiresAt: expiresAt,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// Log error but response already sent
		return
	}
}

// deliverCode hands the code to the SMS gateway. Until one is wired it logs
// only the masked phone number.
// TODO: plug in the SMS provider client once the account is provisioned.
func (h *AuthHandler) deliverCode(phone string, _ string) {
	log.Printf("[auth] OTP issued for %s", maskPhone(phone))
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return "****" + phone[len(phone)-4:]
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
