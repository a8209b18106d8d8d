package services

import (
	"net/http"
	"time"

	"servihub_backend/internal/apperrors"
	"servihub_backend/internal/email"
	"servihub_backend/internal/logger"
	"servihub_backend/internal/models"
	"servihub_backend/internal/repositories"
	"servihub_backend/internal/services/dto"
)

// Бан "навсегда" моделируется большим фиксированным сроком, а не
// sentinel-значением: у identity-слоя нет понятия бессрочного бана.
const permanentBanDuration = 100 * 365 * 24 * time.Hour

type AdminService interface {
	PlatformStats() (*dto.PlatformStats, error)
	ListUsers(limit, offset int, search string) ([]dto.AdminUser, error)
	BanUser(adminID, userID, reason string) error
	PendingVerifications() ([]dto.VerificationView, error)
	ApproveVerification(adminID, verificationID string) error
	RejectVerification(adminID, verificationID, reason string) error
}

type AdminServiceImpl struct {
	userRepo         repositories.UserRepository
	banRepo          repositories.BanRepository
	profileRepo      repositories.ProfileRepository
	verificationRepo repositories.VerificationRepository
	statsRepo        repositories.StatsRepository
	emailProvider    email.Provider
}

func NewAdminService(
	userRepo repositories.UserRepository,
	banRepo repositories.BanRepository,
	profileRepo repositories.ProfileRepository,
	verificationRepo repositories.VerificationRepository,
	statsRepo repositories.StatsRepository,
	emailProvider email.Provider,
) AdminService {
	return &AdminServiceImpl{
		userRepo:         userRepo,
		banRepo:          banRepo,
		profileRepo:      profileRepo,
		verificationRepo: verificationRepo,
		statsRepo:        statsRepo,
		emailProvider:    emailProvider,
	}
}

// PlatformStats выполняет пять независимых запросов. Частичных результатов
// нет: любая упавшая выборка роняет весь ответ.
func (s *AdminServiceImpl) PlatformStats() (*dto.PlatformStats, error) {
	users, err := s.statsRepo.CountUsers()
	if err != nil {
		return nil, statsError(err)
	}

	profiles, err := s.statsRepo.CountProfiles()
	if err != nil {
		return nil, statsError(err)
	}

	demands, err := s.statsRepo.CountDemands()
	if err != nil {
		return nil, statsError(err)
	}

	proposals, err := s.statsRepo.CountProposals()
	if err != nil {
		return nil, statsError(err)
	}

	revenue, err := s.statsRepo.ActiveSubscriptionRevenue()
	if err != nil {
		return nil, statsError(err)
	}

	return &dto.PlatformStats{
		Users:          users,
		Profiles:       profiles,
		Demands:        demands,
		Proposals:      proposals,
		MonthlyRevenue: revenue,
	}, nil
}

func statsError(err error) *apperrors.AppError {
	return apperrors.Wrap(err, apperrors.CodeDatabaseError, err.Error(), http.StatusInternalServerError)
}

func (s *AdminServiceImpl) ListUsers(limit, offset int, search string) ([]dto.AdminUser, error) {
	users, err := s.userRepo.FindAll(limit, offset, search)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	views := make([]dto.AdminUser, 0, len(users))
	for _, u := range users {
		views = append(views, buildAdminUser(&u))
	}
	return views, nil
}

// BanUser - два последовательных нетранзакционных эффекта: бан на уровне
// identity и append-only строка аудита. Если аудит не записался после
// успешного бана, наружу уходит PARTIALLY_APPLIED, а не тихий успех.
func (s *AdminServiceImpl) BanUser(adminID, userID, reason string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.NewBadRequestError(err.Error())
	}

	now := time.Now()
	if err := s.userRepo.Ban(userID, now.Add(permanentBanDuration)); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.NewBadRequestError(err.Error())
	}

	ban := &models.UserBan{
		UserID:   userID,
		Reason:   reason,
		BannedBy: adminID,
		BannedAt: now,
	}
	if err := s.banRepo.Create(ban); err != nil {
		return apperrors.PartiallyApplied(err, "User banned but audit record was not written")
	}

	if err := s.emailProvider.SendBanNotice(user.Email, reason); err != nil {
		logger.Warn("ban notice email failed", "user_id", userID, "error", err.Error())
	}
	return nil
}

func (s *AdminServiceImpl) PendingVerifications() ([]dto.VerificationView, error) {
	verifications, err := s.verificationRepo.FindPending()
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	views := make([]dto.VerificationView, 0, len(verifications))
	for _, v := range verifications {
		views = append(views, buildVerificationView(&v))
	}
	return views, nil
}

// ApproveVerification - тоже два шага: решение по заявке и флаг verified на
// профиле. Заявка без единой затронутой строки - NotFound; упавший второй
// шаг после успешного первого - PARTIALLY_APPLIED.
func (s *AdminServiceImpl) ApproveVerification(adminID, verificationID string) error {
	err := s.verificationRepo.MarkReviewed(verificationID, models.VerificationStatusApproved, adminID, "")
	if err != nil {
		if apperrors.Is(err, repositories.ErrVerificationNotFound) {
			return apperrors.ErrVerificationNotFound
		}
		return apperrors.NewBadRequestError(err.Error())
	}

	verification, err := s.verificationRepo.FindByID(verificationID)
	if err != nil {
		return apperrors.PartiallyApplied(err, "Verification approved but profile was not updated")
	}

	if err := s.profileRepo.SetVerified(verification.ProfileID); err != nil {
		return apperrors.PartiallyApplied(err, "Verification approved but profile was not updated")
	}

	s.notifyVerificationDecision(&verification.Profile, true, "")
	return nil
}

func (s *AdminServiceImpl) RejectVerification(adminID, verificationID, reason string) error {
	err := s.verificationRepo.MarkReviewed(verificationID, models.VerificationStatusRejected, adminID, reason)
	if err != nil {
		if apperrors.Is(err, repositories.ErrVerificationNotFound) {
			return apperrors.ErrVerificationNotFound
		}
		return apperrors.NewBadRequestError(err.Error())
	}

	verification, err := s.verificationRepo.FindByID(verificationID)
	if err == nil {
		s.notifyVerificationDecision(&verification.Profile, false, reason)
	}
	return nil
}

func (s *AdminServiceImpl) notifyVerificationDecision(profile *models.Profile, approved bool, notes string) {
	user, err := s.userRepo.FindByID(profile.UserID)
	if err != nil {
		logger.Warn("verification notice skipped: owner lookup failed", "profile_id", profile.ID, "error", err.Error())
		return
	}
	if err := s.emailProvider.SendVerificationDecision(user.Email, approved, notes); err != nil {
		logger.Warn("verification notice email failed", "user_id", user.ID, "error", err.Error())
	}
}

func buildAdminUser(u *models.User) dto.AdminUser {
	return dto.AdminUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}
}

func buildVerificationView(v *models.ProfileVerification) dto.VerificationView {
	return dto.VerificationView{
		ID:          v.ID,
		ProfileID:   v.ProfileID,
		Status:      string(v.Status),
		SubmittedAt: v.SubmittedAt,
		ReviewedBy:  v.ReviewedBy,
		ReviewedAt:  v.ReviewedAt,
		Profile: dto.ProfileView{
			ID:          v.Profile.ID,
			UserID:      v.Profile.UserID,
			DisplayName: v.Profile.DisplayName,
			Trade:       v.Profile.Trade,
			City:        v.Profile.City,
			Services:    v.Profile.GetServices(),
			Verified:    v.Profile.Verified,
		},
	}
}
