package httpserver

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}
	st, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("login rejected")
		writeError(w, err)
		return
	}
	s.writeUserSession(w, &sessionUser{Email: st.Email, Name: st.Name})
	writeJSON(w, http.StatusOK, map[string]any{"email": st.Email, "name": st.Name})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.writeUserSession(w, nil)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u := s.readUserSession(r)
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: state, Path: "/", MaxAge: 300, HttpOnly: true})
	http.Redirect(w, r, s.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOnline), http.StatusFound)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, _ := r.Cookie("oauth_state")
	if c == nil || c.Value == "" || c.Value != q.Get("state") {
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}
	tok, err := s.oauthCfg.Exchange(r.Context(), q.Get("code"))
	if err != nil {
		log.Error().Err(err).Msg("oauth exchange")
		http.Error(w, "oauth exchange failed", http.StatusBadRequest)
		return
	}
	client := s.oauthCfg.Client(r.Context(), tok)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v3/userinfo")
	if err != nil || resp.StatusCode != http.StatusOK {
		log.Error().Err(err).Msg("oauth userinfo")
		http.Error(w, "userinfo failed", http.StatusBadRequest)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	_ = json.Unmarshal(body, &info)
	if info.Email == "" {
		http.Error(w, "no email in profile", http.StatusBadRequest)
		return
	}
	// Only registered staff get a session out of a Google identity.
	st, err := s.auth.LookupByEmail(r.Context(), info.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	s.writeUserSession(w, &sessionUser{Email: st.Email, Name: st.Name})
	http.Redirect(w, r, "/", http.StatusFound)
}
