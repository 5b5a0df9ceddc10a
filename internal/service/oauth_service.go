package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"travelorbit-be/internal/config"
	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/pkg/logger"
	"travelorbit-be/internal/repository/specification"
	"travelorbit-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type IOAuthService interface {
	GetLoginURL(provider string) (*dto.OAuthURLResponse, error)
	HandleCallback(ctx context.Context, provider string, code string) (*dto.LoginResponse, error)
	GoogleConfig() *oauth2.Config
}

type oauthService struct {
	uowFactory  unitofwork.RepositoryFactory
	authService IAuthService
	googleConf  *oauth2.Config
	log         logger.ILogger
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory, authService IAuthService, cfg *config.Config, log logger.ILogger) IOAuthService {
	scopes := []string{
		"https://www.googleapis.com/auth/userinfo.email",
		"https://www.googleapis.com/auth/userinfo.profile",
	}
	if cfg.Google.CalendarEnabled {
		scopes = append(scopes, "https://www.googleapis.com/auth/calendar.events")
	}

	conf := &oauth2.Config{
		ClientID:     cfg.Google.OAuthClientID,
		ClientSecret: cfg.Google.OAuthClientSecret,
		RedirectURL:  cfg.Google.OAuthRedirectURL,
		Scopes:       scopes,
		Endpoint:     google.Endpoint,
	}

	return &oauthService{
		uowFactory:  uowFactory,
		authService: authService,
		googleConf:  conf,
		log:         log,
	}
}

func (s *oauthService) GoogleConfig() *oauth2.Config {
	return s.googleConf
}

func (s *oauthService) GetLoginURL(provider string) (*dto.OAuthURLResponse, error) {
	if provider != "google" {
		return nil, errors.New("unsupported provider")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	state := base64.URLEncoding.EncodeToString(b)

	return &dto.OAuthURLResponse{
		URL:   s.googleConf.AuthCodeURL(state, oauth2.AccessTypeOffline),
		State: state,
	}, nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider string, code string) (*dto.LoginResponse, error) {
	if provider != "google" {
		return nil, errors.New("unsupported provider")
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %v", err)
	}

	googleUser, err := s.fetchUserInfo(token.AccessToken)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: googleUser.Email})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if user == nil {
		user = &entity.User{
			Id:            uuid.New(),
			RegisterId:    fmt.Sprintf("TO-%s", uuid.New().String()[:8]),
			Email:         googleUser.Email,
			FullName:      googleUser.Name,
			EmailVerified: googleUser.VerifiedEmail,
			GoogleId:      &googleUser.ID,
			CreatedAt:     now,
		}
		if googleUser.Picture != "" {
			user.AvatarURL = &googleUser.Picture
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
		s.log.Info("oauth", "created account from google sign-in", map[string]interface{}{
			"email": googleUser.Email,
		})
	} else {
		changed := false
		if user.GoogleId == nil {
			user.GoogleId = &googleUser.ID
			changed = true
		}
		if !user.EmailVerified && googleUser.VerifiedEmail {
			user.EmailVerified = true
			changed = true
		}
		if user.AvatarURL == nil && googleUser.Picture != "" {
			user.AvatarURL = &googleUser.Picture
			changed = true
		}
		if changed {
			user.UpdatedAt = &now
			if err := uow.UserRepository().Update(ctx, user); err != nil {
				return nil, err
			}
		}
	}

	signed, err := s.authService.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signed,
		User:        toUserDTO(user),
	}, nil
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (s *oauthService) fetchUserInfo(accessToken string) (*googleUserInfo, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %v", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading response: %v", err)
	}

	var info googleUserInfo
	if err := json.Unmarshal(content, &info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errors.New("google did not return an email")
	}
	return &info, nil
}
