package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"travelorbit-be/internal/config"
	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/pkg/mailer"
	"travelorbit-be/internal/repository/specification"
	"travelorbit-be/internal/repository/unitofwork"
	"travelorbit-be/pkg/messaging"
	"travelorbit-be/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const otpTTL = 10 * time.Minute

type IAuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error)
	RequestOtp(ctx context.Context, req *dto.RequestOtpRequest) error
	VerifyOtp(ctx context.Context, req *dto.VerifyOtpRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	IssueToken(user *entity.User) (string, error)
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	smsSender    messaging.ISender
	jwtSecret    string
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, smsSender messaging.ISender, cfg *config.Config) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		emailService: emailService,
		smsSender:    smsSender,
		jwtSecret:    cfg.JWT.Secret,
	}
}

func hashOtp(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// Signup registers a new traveller and sends a phone verification code.
// The account stays unverified until the code comes back via VerifyOtp.
func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, _ := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if existing != nil {
		return nil, errors.New("email already registered")
	}

	user := &entity.User{
		Id:         uuid.New(),
		RegisterId: fmt.Sprintf("TO-%s", uuid.New().String()[:8]),
		Email:      req.Email,
		FullName:   req.FullName,
		CreatedAt:  time.Now(),
	}
	if req.Phone != "" {
		phone := req.Phone
		user.Phone = &phone
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashStr := string(hash)
		user.PasswordHash = &hashStr
	}

	code, err := utils.GenerateOTP(6)
	if err != nil {
		return nil, err
	}

	otp := &entity.OtpCode{
		Id:         uuid.New(),
		Identifier: req.Phone,
		CodeHash:   hashOtp(code),
		Purpose:    entity.OtpPurposeSignup,
		ExpiresAt:  time.Now().Add(otpTTL),
		CreatedAt:  time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.OtpRepository().Create(ctx, otp); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Delivery failures are not fatal; the client can re-request the code.
	if err := s.smsSender.SendSMS(ctx, req.Phone, "Your TravelOrbit verification code is "+code); err != nil {
		fmt.Printf("[WARN] Failed to send signup OTP: %v\n", err)
	}

	return &dto.SignupResponse{
		Id:         user.Id,
		RegisterId: user.RegisterId,
		Email:      user.Email,
		OtpSentTo:  req.Phone,
	}, nil
}

// RequestOtp issues a fresh code to an email or phone identifier.
func (s *authService) RequestOtp(ctx context.Context, req *dto.RequestOtpRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	purpose := entity.OtpPurpose(req.Purpose)
	if purpose == entity.OtpPurposeLogin {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Identifier})
		if err != nil {
			return err
		}
		if user == nil {
			return errors.New("no account for this email")
		}
	}

	code, err := utils.GenerateOTP(6)
	if err != nil {
		return err
	}

	otp := &entity.OtpCode{
		Id:         uuid.New(),
		Identifier: req.Identifier,
		CodeHash:   hashOtp(code),
		Purpose:    purpose,
		ExpiresAt:  time.Now().Add(otpTTL),
		CreatedAt:  time.Now(),
	}
	if err := uow.OtpRepository().Create(ctx, otp); err != nil {
		return err
	}

	if purpose == entity.OtpPurposeLogin {
		return s.emailService.SendOTP(req.Identifier, code)
	}
	return s.smsSender.SendSMS(ctx, req.Identifier, "Your TravelOrbit verification code is "+code)
}

// VerifyOtp redeems a one-time code. Signup codes flip phone verification,
// login codes mint a session token.
func (s *authService) VerifyOtp(ctx context.Context, req *dto.VerifyOtpRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	otp, err := uow.OtpRepository().FindLatest(ctx,
		specification.ByIdentifier{Identifier: req.Identifier},
		specification.ByPurpose{Purpose: req.Purpose},
		specification.Unused{},
	)
	if err != nil {
		return nil, err
	}
	if otp == nil || otp.Expired(time.Now()) {
		return nil, errors.New("code expired or not found")
	}
	if otp.CodeHash != hashOtp(req.Code) {
		return nil, errors.New("invalid code")
	}

	otp.Used = true
	if err := uow.OtpRepository().Update(ctx, otp); err != nil {
		return nil, err
	}

	var user *entity.User
	switch entity.OtpPurpose(req.Purpose) {
	case entity.OtpPurposeSignup, entity.OtpPurposePhoneVerify:
		user, err = uow.UserRepository().FindOne(ctx, specification.ByPhone{Phone: req.Identifier})
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, errors.New("no account for this phone")
		}
		user.PhoneVerified = true
		now := time.Now()
		user.UpdatedAt = &now
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	case entity.OtpPurposeLogin:
		user, err = uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Identifier})
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, errors.New("no account for this email")
		}
		if !user.EmailVerified {
			user.EmailVerified = true
			now := time.Now()
			user.UpdatedAt = &now
			if err := uow.UserRepository().Update(ctx, user); err != nil {
				return nil, err
			}
		}
	default:
		return nil, errors.New("unknown otp purpose")
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		User:        toUserDTO(user),
	}, nil
}

// Login authenticates by password when one is set; passwordless accounts
// get an email code instead and finish via VerifyOtp.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("invalid credentials")
	}

	if req.Password == "" || user.PasswordHash == nil {
		if err := s.RequestOtp(ctx, &dto.RequestOtpRequest{
			Identifier: req.Email,
			Purpose:    string(entity.OtpPurposeLogin),
		}); err != nil {
			return nil, err
		}
		return &dto.LoginResponse{OtpRequired: true, User: toUserDTO(user)}, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		User:        toUserDTO(user),
	}, nil
}

func (s *authService) IssueToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func toUserDTO(user *entity.User) dto.UserDTO {
	res := dto.UserDTO{
		Id:            user.Id,
		Email:         user.Email,
		FullName:      user.FullName,
		EmailVerified: user.EmailVerified,
		PhoneVerified: user.PhoneVerified,
	}
	if user.Phone != nil {
		res.Phone = *user.Phone
	}
	if user.AvatarURL != nil {
		res.AvatarURL = *user.AvatarURL
	}
	return res
}
