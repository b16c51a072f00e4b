package api

import (
	"net/http"
)

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err, "", nil)
		return
	}
	if err := a.auth.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		fail(w, r, err, "Something went wrong", authFormStatus)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered"})
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err, "", nil)
		return
	}
	token, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		fail(w, r, err, "Server error", loginStatus)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

type emailRequest struct {
	Email string `json:"email"`
}

func (a *API) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err, "", nil)
		return
	}
	if err := a.auth.RequestReset(r.Context(), req.Email); err != nil {
		fail(w, r, err, "Error sending OTP", authFormStatus)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP sent to your email"})
}

func (a *API) resendOTP(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err, "", nil)
		return
	}
	if err := a.auth.ResendReset(r.Context(), req.Email); err != nil {
		fail(w, r, err, "Error sending OTP", authFormStatus)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "A new OTP has been sent to your email"})
}

func (a *API) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err, "", nil)
		return
	}
	resetToken, err := a.auth.Verify(r.Context(), req.Email, req.OTP)
	if err != nil {
		fail(w, r, err, "Error verifying OTP", authFormStatus)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":    "OTP verified",
		"resetToken": resetToken,
	})
}

func (a *API) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
		ResetToken  string `json:"resetToken"`
	}
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err, "", nil)
		return
	}
	if err := a.auth.Reset(r.Context(), req.Email, req.NewPassword, req.ResetToken); err != nil {
		fail(w, r, err, "Something went wrong", authFormStatus)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset successful"})
}

func (a *API) currentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, profileFrom(r.Context()))
}
