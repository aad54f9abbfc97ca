package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lawrencemparker/Stride4Stride/models"
	"github.com/lawrencemparker/Stride4Stride/repositories"
	"github.com/lawrencemparker/Stride4Stride/storage"
)

const (
	joinCodeLength = 4 // bytes, 8 hex characters

	// MaskedContact replaces email and phone in roster views when the member
	// has not consented to sharing and the viewer is not in admin mode.
	MaskedContact = "Contact Hidden"

	defaultPrizeMessage = "Welcome to the club! Set your prizes here."
)

// ClubBroadcaster pushes a club snapshot to connected clients after a
// mutation. The websocket hub implements it.
type ClubBroadcaster interface {
	BroadcastClubUpdate(clubID int, event string, payload interface{})
}

type ClubService interface {
	LaunchClub(ctx context.Context, userID int, name string) (*models.Club, error)
	JoinClub(ctx context.Context, userID int, code string) (*models.Club, error)
	GetClub(ctx context.Context, clubID, viewerID int, adminView bool) (*models.Club, error)
	ListClubsForUser(ctx context.Context, userID int) ([]*models.Club, error)
	DeleteClub(ctx context.Context, clubID, currentUserID int) error
	RemoveMember(ctx context.Context, clubID, currentUserID int, email string) (*models.Club, error)
	PostAnnouncement(ctx context.Context, clubID, currentUserID int, title, body string) (*models.Club, error)
	EditAnnouncement(ctx context.Context, clubID, currentUserID int, annID int64, title, body string) (*models.Club, error)
	DeleteAnnouncement(ctx context.Context, clubID, currentUserID int, annID int64) (*models.Club, error)
	SetPrizeMessage(ctx context.Context, clubID, currentUserID int, message string) (*models.Club, error)
	UploadLogo(ctx context.Context, clubID, currentUserID int, contentType string, r io.Reader) (*models.Club, error)
}

type clubService struct {
	tx       repositories.TxRunner
	clubRepo repositories.ClubRepository
	userRepo repositories.UserRepository
	uploader storage.FileUploader
	hub      ClubBroadcaster
	logger   *slog.Logger
}

func NewClubService(
	tx repositories.TxRunner,
	clubRepo repositories.ClubRepository,
	userRepo repositories.UserRepository,
	uploader storage.FileUploader,
	hub ClubBroadcaster,
	logger *slog.Logger,
) ClubService {
	return &clubService{
		tx:       tx,
		clubRepo: clubRepo,
		userRepo: userRepo,
		uploader: uploader,
		hub:      hub,
		logger:   logger,
	}
}

// LaunchClub creates a club with the creator as admin and sole initial
// member, and asserts the creator's founder flag, in one transaction. The
// founder gate is enforced here regardless of what the client showed: a
// non-founder write is rejected even if the upsell screen was bypassed.
func (s *clubService) LaunchClub(ctx context.Context, userID int, name string) (*models.Club, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrClubNameRequired
	}

	creator, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if !creator.IsFounder {
		return nil, ErrFounderRequired
	}

	code, err := generateJoinCode(joinCodeLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate join code: %w", err)
	}

	club := &models.Club{
		Name:      name,
		AdminID:   creator.ID,
		AdminName: creator.FullName,
		JoinCode:  code,
		Members: []models.Member{{
			Name:         creator.FullName,
			Email:        creator.Email,
			Phone:        creator.Phone,
			Miles:        0,
			ShareConsent: creator.ConsentsToShare(),
		}},
		Announcements: []models.Announcement{},
		PrizeMessage:  defaultPrizeMessage,
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.clubRepo.Create(ctx, exec, club); err != nil {
			return fmt.Errorf("failed to create club: %w", err)
		}
		// The flag is usually already true (it gated this call), but writing
		// it in the same transaction keeps club creation and entitlement in
		// step.
		if err := s.userRepo.SetFounder(ctx, exec, creator.ID, true); err != nil {
			return fmt.Errorf("failed to set founder flag: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(club, "CLUB_LAUNCHED")
	return club, nil
}

// JoinClub adds the caller to the club identified by the join code,
// snapshotting the current profile's name, phone, and sharing consent. A
// later profile edit does not update the embedded copy. Joining a club the
// caller already belongs to reports a benign conflict and changes nothing.
func (s *clubService) JoinClub(ctx context.Context, userID int, code string) (*models.Club, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrClubNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	club, err := s.clubRepo.GetByJoinCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to look up club by code: %w", err)
	}

	for _, m := range club.Members {
		if strings.EqualFold(m.Email, user.Email) {
			return nil, ErrAlreadyClubMember
		}
	}

	club.Members = append(club.Members, models.Member{
		Name:         user.FullName,
		Email:        user.Email,
		Phone:        user.Phone,
		Miles:        0,
		ShareConsent: user.ConsentsToShare(),
	})

	if err := s.clubRepo.UpdateMembers(ctx, club.ID, club.Members); err != nil {
		return nil, fmt.Errorf("failed to add member to club %d: %w", club.ID, err)
	}

	s.broadcast(club, "MEMBER_JOINED")
	return club, nil
}

// GetClub returns the club with contact details projected for the viewer.
// adminView is honored only when the viewer actually is the admin; for
// everyone else, members who have not consented to sharing get masked
// contact fields. The projection is a display filter over the read, the
// stored data is untouched.
func (s *clubService) GetClub(ctx context.Context, clubID, viewerID int, adminView bool) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club %d: %w", clubID, err)
	}

	s.projectForViewer(club, viewerID, adminView)
	s.resolveLogoURL(club)
	return club, nil
}

// ListClubsForUser returns clubs the user administers or belongs to, each
// projected with the member-visible view.
func (s *clubService) ListClubsForUser(ctx context.Context, userID int) ([]*models.Club, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	clubs, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}

	mine := make([]*models.Club, 0)
	for _, club := range clubs {
		if club.AdminID == userID {
			s.projectForViewer(club, userID, false)
			s.resolveLogoURL(club)
			mine = append(mine, club)
			continue
		}
		for _, m := range club.Members {
			if strings.EqualFold(m.Email, user.Email) {
				s.projectForViewer(club, userID, false)
				s.resolveLogoURL(club)
				mine = append(mine, club)
				break
			}
		}
	}
	return mine, nil
}

// DeleteClub removes the whole club record, embedded members and
// announcements included, in one operation.
func (s *clubService) DeleteClub(ctx context.Context, clubID, currentUserID int) error {
	if _, err := s.adminClub(ctx, clubID, currentUserID); err != nil {
		return err
	}

	if err := s.clubRepo.Delete(ctx, clubID); err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return ErrClubNotFound
		}
		return fmt.Errorf("failed to delete club %d: %w", clubID, err)
	}

	if s.hub != nil {
		s.hub.BroadcastClubUpdate(clubID, "CLUB_DELETED", nil)
	}
	return nil
}

// RemoveMember drops the member with the given email from the club's list.
// The admin cannot be removed this way.
func (s *clubService) RemoveMember(ctx context.Context, clubID, currentUserID int, email string) (*models.Club, error) {
	club, err := s.adminClub(ctx, clubID, currentUserID)
	if err != nil {
		return nil, err
	}

	admin, err := s.userRepo.GetByID(ctx, club.AdminID)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get club admin %d: %w", club.AdminID, err)
	}
	if admin != nil && strings.EqualFold(admin.Email, email) {
		return nil, ErrCannotRemoveAdmin
	}

	kept := make([]models.Member, 0, len(club.Members))
	found := false
	for _, m := range club.Members {
		if strings.EqualFold(m.Email, email) {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return nil, ErrMemberNotFound
	}

	club.Members = kept
	if err := s.clubRepo.UpdateMembers(ctx, clubID, kept); err != nil {
		return nil, fmt.Errorf("failed to update members for club %d: %w", clubID, err)
	}

	s.broadcast(club, "MEMBER_REMOVED")
	return club, nil
}

// PostAnnouncement appends an announcement with an id unique within the
// club's list.
func (s *clubService) PostAnnouncement(ctx context.Context, clubID, currentUserID int, title, body string) (*models.Club, error) {
	title, body = strings.TrimSpace(title), strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, ErrAnnouncementInvalid
	}

	club, err := s.adminClub(ctx, clubID, currentUserID)
	if err != nil {
		return nil, err
	}

	annID := time.Now().UnixMilli()
	for hasAnnouncementID(club.Announcements, annID) {
		annID++
	}

	club.Announcements = append(club.Announcements, models.Announcement{
		ID:    annID,
		Title: title,
		Body:  body,
	})

	if err := s.clubRepo.UpdateAnnouncements(ctx, clubID, club.Announcements); err != nil {
		return nil, fmt.Errorf("failed to update announcements for club %d: %w", clubID, err)
	}

	s.broadcast(club, "ANNOUNCEMENT_POSTED")
	return club, nil
}

func (s *clubService) EditAnnouncement(ctx context.Context, clubID, currentUserID int, annID int64, title, body string) (*models.Club, error) {
	title, body = strings.TrimSpace(title), strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, ErrAnnouncementInvalid
	}

	club, err := s.adminClub(ctx, clubID, currentUserID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range club.Announcements {
		if club.Announcements[i].ID == annID {
			club.Announcements[i].Title = title
			club.Announcements[i].Body = body
			found = true
			break
		}
	}
	if !found {
		return nil, ErrAnnouncementNotFound
	}

	if err := s.clubRepo.UpdateAnnouncements(ctx, clubID, club.Announcements); err != nil {
		return nil, fmt.Errorf("failed to update announcements for club %d: %w", clubID, err)
	}

	s.broadcast(club, "ANNOUNCEMENT_UPDATED")
	return club, nil
}

func (s *clubService) DeleteAnnouncement(ctx context.Context, clubID, currentUserID int, annID int64) (*models.Club, error) {
	club, err := s.adminClub(ctx, clubID, currentUserID)
	if err != nil {
		return nil, err
	}

	kept := make([]models.Announcement, 0, len(club.Announcements))
	found := false
	for _, a := range club.Announcements {
		if a.ID == annID {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return nil, ErrAnnouncementNotFound
	}

	club.Announcements = kept
	if err := s.clubRepo.UpdateAnnouncements(ctx, clubID, kept); err != nil {
		return nil, fmt.Errorf("failed to update announcements for club %d: %w", clubID, err)
	}

	s.broadcast(club, "ANNOUNCEMENT_DELETED")
	return club, nil
}

func (s *clubService) SetPrizeMessage(ctx context.Context, clubID, currentUserID int, message string) (*models.Club, error) {
	club, err := s.adminClub(ctx, clubID, currentUserID)
	if err != nil {
		return nil, err
	}

	club.PrizeMessage = message
	if err := s.clubRepo.UpdatePrizeMessage(ctx, clubID, message); err != nil {
		return nil, fmt.Errorf("failed to update prize message for club %d: %w", clubID, err)
	}

	s.broadcast(club, "PRIZE_UPDATED")
	return club, nil
}

func (s *clubService) UploadLogo(ctx context.Context, clubID, currentUserID int, contentType string, r io.Reader) (*models.Club, error) {
	if s.uploader == nil {
		return nil, ErrStorageUnavailable
	}

	club, err := s.adminClub(ctx, clubID, currentUserID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("logos/clubs/%d", clubID)
	result, err := s.uploader.Upload(ctx, key, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo for club %d: %w", clubID, err)
	}

	oldKey := club.LogoKey
	if err := s.clubRepo.SetLogoKey(ctx, clubID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store logo key for club %d: %w", clubID, err)
	}

	if oldKey != nil && *oldKey != result.Key {
		if delErr := s.uploader.Delete(ctx, *oldKey); delErr != nil {
			s.logger.Warn("failed to delete previous logo object",
				slog.String("key", *oldKey), slog.Any("error", delErr))
		}
	}

	club.LogoKey = &result.Key
	s.resolveLogoURL(club)
	return club, nil
}

// adminClub loads the club and verifies the caller is its admin. Every
// admin-only operation goes through this check server-side; the client's own
// admin toggle is never trusted.
func (s *clubService) adminClub(ctx context.Context, clubID, currentUserID int) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club %d: %w", clubID, err)
	}
	if club.AdminID != currentUserID {
		return nil, ErrAdminActionForbidden
	}
	return club, nil
}

func (s *clubService) projectForViewer(club *models.Club, viewerID int, adminView bool) {
	adminMode := adminView && club.AdminID == viewerID
	if adminMode {
		return
	}
	for i := range club.Members {
		if !club.Members[i].ShareConsent {
			club.Members[i].Email = MaskedContact
			club.Members[i].Phone = ""
		}
	}
}

func (s *clubService) resolveLogoURL(club *models.Club) {
	if club.LogoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*club.LogoKey)
		club.LogoURL = &url
	}
}

func (s *clubService) broadcast(club *models.Club, event string) {
	if s.hub == nil {
		return
	}
	// Connected clients get the member-visible projection; admin sessions
	// re-fetch with their toggle if they need raw contact details.
	snapshot := *club
	snapshot.Members = make([]models.Member, len(club.Members))
	copy(snapshot.Members, club.Members)
	s.projectForViewer(&snapshot, 0, false)
	s.hub.BroadcastClubUpdate(club.ID, event, &snapshot)
}

func hasAnnouncementID(anns []models.Announcement, id int64) bool {
	for _, a := range anns {
		if a.ID == id {
			return true
		}
	}
	return false
}

func generateJoinCode(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
