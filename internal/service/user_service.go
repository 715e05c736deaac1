package service

import (
	"errors"
	"fmt"
	"strings"

	"Civic_Tracker/internal/model"
	"Civic_Tracker/internal/pkg"
	"Civic_Tracker/internal/repository/mysql"
	"Civic_Tracker/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo     *mysql.UserRepository
	rUser    *redis.UserRepository
	emailSvc *EmailService
}

func NewUserService(emailSvc *EmailService) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{},
		rUser:    &redis.UserRepository{},
		emailSvc: emailSvc,
	}
}

// Register 注册，邮箱验证码先行。role 只接受 user/volunteer，admin 要走后台提权
func (s *UserService) Register(name, email, password, location, role, code string) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password required", ErrValidation)
	}

	r := model.RoleUser
	switch strings.ToLower(role) {
	case "", "user":
	case "volunteer":
		r = model.RoleVolunteer
	default:
		return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, role)
	}

	ok, err := s.emailSvc.VerifyCode("register", email, code)
	if err != nil || !ok {
		return nil, fmt.Errorf("%w: verification code", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     r,
		Location: location,
	}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

// Login 邮箱+密码，通过后签发 token 对并把 access 写进 redis 白名单
func (s *UserService) Login(email, password string) (*model.User, *pkg.Pair, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	}

	token, err := pkg.GeneratePair(user.ID, user.Role, user.Name)
	if err != nil {
		return nil, nil, err
	}
	if err := s.rUser.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

func (s *UserService) Logout(usrID uint64) error {
	return s.rUser.DeleteUserToken(usrID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	pair, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	// 刷新后的 access 同样写入白名单
	if err := s.rUser.AddUserToken(claims.UserID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *UserService) GetByID(id uint64) (*model.User, error) {
	user, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return user, err
}

type UpdateProfileInput struct {
	Name         *string
	Location     *string
	ProfilePhoto *string
}

// UpdateProfile 资料更新；改名会让 token 里的 name 过期，前端需重新登录拿新 token
func (s *UserService) UpdateProfile(userID uint64, in UpdateProfileInput) (*model.User, error) {
	fields := map[string]any{}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name required", ErrValidation)
		}
		fields["name"] = *in.Name
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.ProfilePhoto != nil {
		fields["profile_photo"] = *in.ProfilePhoto
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(userID, fields); err != nil {
			return nil, err
		}
	}
	return s.GetByID(userID)
}

// ChangePassword 登录态修改密码，成功后踢掉当前会话
func (s *UserService) ChangePassword(usrID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(usrID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return fmt.Errorf("%w: old password is incorrect", ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(user, string(hash)); err != nil {
		return err
	}
	return s.Logout(usrID)
}

// ResetPassword 忘记密码走邮箱验证码
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	ok, err := s.emailSvc.VerifyCode("reset", email, code)
	if err != nil || !ok {
		return fmt.Errorf("%w: verification code", ErrValidation)
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user", ErrNotFound)
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(user, string(hash))
}
