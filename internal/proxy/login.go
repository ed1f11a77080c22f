package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	dErrors "rbconsole/pkg/domain-errors"
	"rbconsole/pkg/platform/httputil"
	"rbconsole/pkg/requestcontext"
)

// tokenTTL is the lifetime reported to the browser and used for the cookie.
const tokenTTL = 1800

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

const maxLoginBody = 16 << 10

// handleLogin turns the console's JSON credentials into the OAuth2 password
// form the backend expects. Failures are passed through untouched; success is
// reshaped and the token is also set as a cookie for later proxied calls.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	route := routePattern(r)
	requestID := requestcontext.RequestID(ctx)

	var in loginRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxLoginBody)).Decode(&in); err != nil {
		h.logger.WarnContext(ctx, "invalid login request", "request_id", requestID, "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		h.audit(r, route, http.StatusBadRequest)
		return
	}
	if in.Email == "" || in.Password == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "email and password are required"))
		h.audit(r, route, http.StatusBadRequest)
		return
	}

	form := url.Values{"username": {in.Email}, "password": {in.Password}}.Encode()
	header := http.Header{"Content-Type": {"application/x-www-form-urlencoded"}, "Accept": {"application/json"}}
	resp, err := h.roundTrip(ctx, route, http.MethodPost, "/auth/login", "", strings.NewReader(form), int64(len(form)), header)
	if err != nil {
		h.writeUpstreamError(w, r, route, err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		h.writeUpstreamError(w, r, route, err)
		return
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		copyHeaders(w.Header(), resp.Header, []string{"Content-Type"})
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write(body)
		h.audit(r, route, resp.StatusCode)
		return
	}

	var upstream struct {
		AccessToken string `json:"access_token"`
		Token       string `json:"token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(body, &upstream); err != nil {
		h.writeUpstreamError(w, r, route, err)
		return
	}
	out := loginResponse{AccessToken: upstream.AccessToken, TokenType: upstream.TokenType, ExpiresIn: tokenTTL}
	if out.AccessToken == "" {
		out.AccessToken = upstream.Token
	}
	if out.TokenType == "" {
		out.TokenType = "bearer"
	}

	if out.AccessToken != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     h.cookieName,
			Value:    out.AccessToken,
			Path:     "/",
			MaxAge:   tokenTTL,
			Secure:   h.cookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	h.logger.InfoContext(ctx, "login succeeded", "request_id", requestID, "email", in.Email)
	httputil.WriteJSON(w, resp.StatusCode, out)
	h.audit(r, route, resp.StatusCode)
}
