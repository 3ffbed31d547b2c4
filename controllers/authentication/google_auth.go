package authentication

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"mentorlink-backend/config"
	"mentorlink-backend/models/users"
)

var googleOauthConfig = &oauth2.Config{
	RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
	ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
	ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
	Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
	Endpoint:     google.Endpoint,
}

type googleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HandleGoogleLogin initiates Google OAuth login
func HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if googleOauthConfig.ClientID == "" || googleOauthConfig.ClientSecret == "" {
		http.Error(w, "Google login is not configured", http.StatusServiceUnavailable)
		return
	}

	state := uuid.NewString()
	session, _ := config.Store.Get(r, "oauth-state")
	session.Values["state"] = state
	if err := session.Save(r, w); err != nil {
		http.Error(w, "Could not start login", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, googleOauthConfig.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// HandleGoogleCallback processes the OAuth callback, creates or reuses the
// local account and issues the same JWT cookie as a password login
func HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	session, _ := config.Store.Get(r, "oauth-state")
	expected, _ := session.Values["state"].(string)
	if expected == "" || r.FormValue("state") != expected {
		log.Println("Invalid OAuth state")
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	token, err := googleOauthConfig.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		log.Printf("Error while exchanging code for token: %s", err.Error())
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		log.Printf("Error while fetching user info: %s", err.Error())
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading response: %s", err.Error())
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	var info googleUserInfo
	if err := json.Unmarshal(content, &info); err != nil || info.Email == "" {
		log.Printf("Error parsing user info: %v", err)
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	var user users.User
	if err := config.DB.Where("email = ?", info.Email).First(&user).Error; err != nil {
		// first login: the account gets an unusable random password
		placeholder, _ := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
		user = users.User{
			Name:     info.Name,
			Email:    info.Email,
			Password: string(placeholder),
			Role:     users.RoleUser,
			Provider: "google",
		}
		if err := config.DB.Create(&user).Error; err != nil {
			log.Printf("Error creating user from Google login: %v", err)
			http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
			return
		}
	}

	jwtToken, err := GenerateToken(&user)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	setTokenCookie(w, jwtToken)
	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}
