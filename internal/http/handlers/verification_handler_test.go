package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/pestward/go-booking-backend/internal/domain"
	"github.com/pestward/go-booking-backend/internal/services"
)

func TestIssueCode_StatusMapping(t *testing.T) {
	r, st := newTestRouter(t)
	body := IssueCodeRequest{Email: "a@b.test", Purpose: domain.PurposeEmailVerification}

	cases := []struct {
		name string
		err  error
		want int
		code string
	}{
		{"accepted", nil, http.StatusAccepted, ""},
		{"bad email", services.ErrInvalidEmail, http.StatusUnprocessableEntity, ErrCodeValidation},
		{"bad purpose", services.ErrInvalidPurpose, http.StatusUnprocessableEntity, ErrCodeValidation},
		{"admin exists", services.ErrAdminExists, http.StatusConflict, ErrCodeConflict},
		{"delivery down", services.ErrCodeDelivery, http.StatusBadGateway, ErrCodeDeliveryFailed},
		{"db down", errors.New("disk full"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tc := range cases {
		st.verify.issueErr = tc.err
		w := doJSON(t, r, http.MethodPost, "/verification/codes", body, nil)
		if w.Code != tc.want {
			t.Errorf("%s: status = %d; want %d", tc.name, w.Code, tc.want)
			continue
		}
		if tc.code != "" {
			if er := decodeErr(t, w); er.Code != tc.code {
				t.Errorf("%s: code = %q; want %q", tc.name, er.Code, tc.code)
			}
		}
	}
}

func TestRedeemCode_RoutesByPurpose(t *testing.T) {
	r, st := newTestRouter(t)

	// Plain purposes go through Redeem.
	w := doJSON(t, r, http.MethodPost, "/verification/redeem",
		RedeemCodeRequest{Email: "a@b.test", Code: "123456", Purpose: domain.PurposeEmailVerification}, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("redeem -> %d", w.Code)
	}
	if !st.verify.redeemCalled || st.verify.adminCalled {
		t.Fatalf("wrong service path: redeem=%v admin=%v", st.verify.redeemCalled, st.verify.adminCalled)
	}

	// Admin creation goes through RedeemAdminCreation with the caller identity.
	r2, st2 := newTestRouter(t)
	w = doJSON(t, r2, http.MethodPost, "/verification/redeem",
		RedeemCodeRequest{Email: "owner@pestward.test", Code: "123456", Purpose: domain.PurposeAdminCreation}, authHdr)
	if w.Code != http.StatusNoContent {
		t.Fatalf("admin redeem -> %d", w.Code)
	}
	if !st2.verify.adminCalled || st2.verify.gotUserID != "client-1" {
		t.Fatalf("admin path: called=%v user=%q", st2.verify.adminCalled, st2.verify.gotUserID)
	}
}

func TestRedeemCode_ErrorMapping(t *testing.T) {
	r, st := newTestRouter(t)
	body := RedeemCodeRequest{Email: "a@b.test", Code: "000000", Purpose: domain.PurposeEmailVerification}

	// Invalid, expired, and used codes read identically to the caller.
	st.verify.redeemErr = services.ErrInvalidCode
	w := doJSON(t, r, http.MethodPost, "/verification/redeem", body, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid code -> %d", w.Code)
	}
	er := decodeErr(t, w)
	if er.Code != ErrCodeInvalidCode || er.Message != "invalid or expired code" {
		t.Fatalf("invalid-code envelope = %+v", er)
	}

	st.verify.redeemErr = errors.New("connection reset")
	w = doJSON(t, r, http.MethodPost, "/verification/redeem", body, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("infra failure -> %d", w.Code)
	}

	// Anonymous admin redemption.
	st.verify.adminErr = services.ErrUnauthenticated
	w = doJSON(t, r, http.MethodPost, "/verification/redeem",
		RedeemCodeRequest{Email: "a@b.test", Code: "000000", Purpose: domain.PurposeAdminCreation}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous admin redeem -> %d", w.Code)
	}
}

func TestVerification_MalformedBodies(t *testing.T) {
	r, _ := newTestRouter(t)

	// Missing required fields bind-fail into 400.
	w := doJSON(t, r, http.MethodPost, "/verification/codes", map[string]string{"email": "a@b.test"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing purpose -> %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/verification/redeem", map[string]string{"email": "a@b.test"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing code -> %d", w.Code)
	}
}
