package services

import (
	"context"
	"time"

	"github.com/lawrencemparker/Stride4Stride/models"
	"github.com/lawrencemparker/Stride4Stride/repositories"
)

// In-memory fakes mirroring the Postgres repositories. Getters return copies
// so services cannot mutate stored state without an explicit update call,
// the same contract the real repositories give.

type fakeTxRunner struct{}

func (fakeTxRunner) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakeUserRepo struct {
	users  map[int]models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) SetFounder(ctx context.Context, exec repositories.SQLExecutor, id int, founder bool) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.IsFounder = founder
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) SetAvatarKey(ctx context.Context, id int, key *string) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.AvatarKey = key
	r.users[id] = u
	return nil
}

type fakeRunRepo struct {
	runs   map[int]models.Run
	order  []int
	nextID int
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{runs: make(map[int]models.Run), nextID: 1}
}

func (r *fakeRunRepo) Create(ctx context.Context, run *models.Run) error {
	run.ID = r.nextID
	run.CreatedAt = time.Now()
	r.nextID++
	r.runs[run.ID] = *run
	r.order = append(r.order, run.ID)
	return nil
}

func (r *fakeRunRepo) GetByID(ctx context.Context, id int) (*models.Run, error) {
	run, ok := r.runs[id]
	if !ok {
		return nil, repositories.ErrRunNotFound
	}
	copied := run
	return &copied, nil
}

func (r *fakeRunRepo) Update(ctx context.Context, run *models.Run) error {
	if _, ok := r.runs[run.ID]; !ok {
		return repositories.ErrRunNotFound
	}
	r.runs[run.ID] = *run
	return nil
}

func (r *fakeRunRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.runs[id]; !ok {
		return repositories.ErrRunNotFound
	}
	delete(r.runs, id)
	return nil
}

func (r *fakeRunRepo) ListByUserID(ctx context.Context, userID int) ([]models.Run, error) {
	runs := make([]models.Run, 0)
	for _, id := range r.order {
		run, ok := r.runs[id]
		if ok && run.UserID == userID {
			runs = append(runs, run)
		}
	}
	return runs, nil
}

type fakeShoeRepo struct {
	shoes  map[int]models.Shoe
	order  []int
	nextID int
}

func newFakeShoeRepo() *fakeShoeRepo {
	return &fakeShoeRepo{shoes: make(map[int]models.Shoe), nextID: 1}
}

func (r *fakeShoeRepo) Create(ctx context.Context, shoe *models.Shoe) error {
	shoe.ID = r.nextID
	shoe.CreatedAt = time.Now()
	r.nextID++
	r.shoes[shoe.ID] = *shoe
	r.order = append(r.order, shoe.ID)
	return nil
}

func (r *fakeShoeRepo) GetByID(ctx context.Context, id int) (*models.Shoe, error) {
	shoe, ok := r.shoes[id]
	if !ok {
		return nil, repositories.ErrShoeNotFound
	}
	copied := shoe
	return &copied, nil
}

func (r *fakeShoeRepo) Update(ctx context.Context, shoe *models.Shoe) error {
	if _, ok := r.shoes[shoe.ID]; !ok {
		return repositories.ErrShoeNotFound
	}
	r.shoes[shoe.ID] = *shoe
	return nil
}

func (r *fakeShoeRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.shoes[id]; !ok {
		return repositories.ErrShoeNotFound
	}
	delete(r.shoes, id)
	return nil
}

func (r *fakeShoeRepo) ListByUserID(ctx context.Context, userID int) ([]models.Shoe, error) {
	shoes := make([]models.Shoe, 0)
	for _, id := range r.order {
		shoe, ok := r.shoes[id]
		if ok && shoe.UserID == userID {
			shoes = append(shoes, shoe)
		}
	}
	return shoes, nil
}

type fakeClubRepo struct {
	clubs  map[int]models.Club
	order  []int
	nextID int
}

func newFakeClubRepo() *fakeClubRepo {
	return &fakeClubRepo{clubs: make(map[int]models.Club), nextID: 1}
}

func copyClub(c models.Club) models.Club {
	copied := c
	copied.Members = append([]models.Member(nil), c.Members...)
	copied.Announcements = append([]models.Announcement(nil), c.Announcements...)
	return copied
}

func (r *fakeClubRepo) Create(ctx context.Context, exec repositories.SQLExecutor, club *models.Club) error {
	club.ID = r.nextID
	club.CreatedAt = time.Now()
	r.nextID++
	r.clubs[club.ID] = copyClub(*club)
	r.order = append(r.order, club.ID)
	return nil
}

func (r *fakeClubRepo) GetByID(ctx context.Context, id int) (*models.Club, error) {
	club, ok := r.clubs[id]
	if !ok {
		return nil, repositories.ErrClubNotFound
	}
	copied := copyClub(club)
	return &copied, nil
}

func (r *fakeClubRepo) GetByJoinCode(ctx context.Context, code string) (*models.Club, error) {
	for _, club := range r.clubs {
		if club.JoinCode == code {
			copied := copyClub(club)
			return &copied, nil
		}
	}
	return nil, repositories.ErrClubNotFound
}

func (r *fakeClubRepo) List(ctx context.Context) ([]*models.Club, error) {
	clubs := make([]*models.Club, 0)
	for _, id := range r.order {
		club, ok := r.clubs[id]
		if ok {
			copied := copyClub(club)
			clubs = append(clubs, &copied)
		}
	}
	return clubs, nil
}

func (r *fakeClubRepo) UpdateMembers(ctx context.Context, id int, members []models.Member) error {
	club, ok := r.clubs[id]
	if !ok {
		return repositories.ErrClubNotFound
	}
	club.Members = append([]models.Member(nil), members...)
	r.clubs[id] = club
	return nil
}

func (r *fakeClubRepo) UpdateAnnouncements(ctx context.Context, id int, announcements []models.Announcement) error {
	club, ok := r.clubs[id]
	if !ok {
		return repositories.ErrClubNotFound
	}
	club.Announcements = append([]models.Announcement(nil), announcements...)
	r.clubs[id] = club
	return nil
}

func (r *fakeClubRepo) UpdatePrizeMessage(ctx context.Context, id int, message string) error {
	club, ok := r.clubs[id]
	if !ok {
		return repositories.ErrClubNotFound
	}
	club.PrizeMessage = message
	r.clubs[id] = club
	return nil
}

func (r *fakeClubRepo) SetLogoKey(ctx context.Context, id int, key *string) error {
	club, ok := r.clubs[id]
	if !ok {
		return repositories.ErrClubNotFound
	}
	club.LogoKey = key
	r.clubs[id] = club
	return nil
}

func (r *fakeClubRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.clubs[id]; !ok {
		return repositories.ErrClubNotFound
	}
	delete(r.clubs, id)
	return nil
}
