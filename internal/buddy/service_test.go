package buddy

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"zentrafuge/internal/apperrors"
	"zentrafuge/internal/models"
)

type fakeUserStore struct {
	known map[string]bool
}

func (f *fakeUserStore) GetUser(_ context.Context, userID string) (models.User, error) {
	if !f.known[userID] {
		return models.User{}, apperrors.ErrNotFound
	}
	return models.User{UserID: userID}, nil
}

type fakeMessageStore struct {
	created   []models.PeerMessage
	unclaimed []models.PeerMessage
	claimed   map[string]string // message id -> receiver
	denyFirst int               // claims to reject before allowing one
	forUser   []models.PeerMessage
}

func (f *fakeMessageStore) CreatePeerMessage(_ context.Context, m models.PeerMessage) error {
	f.created = append(f.created, m)
	return nil
}

func (f *fakeMessageStore) UnclaimedPeerMessages(_ context.Context, excludeSender string, limit int) ([]models.PeerMessage, error) {
	out := []models.PeerMessage{}
	for _, m := range f.unclaimed {
		if m.SenderID == excludeSender || m.ReceiverID != nil {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeMessageStore) ClaimPeerMessage(_ context.Context, id, receiverID string, _ time.Time) (bool, error) {
	if f.denyFirst > 0 {
		f.denyFirst--
		return false, nil
	}
	if f.claimed == nil {
		f.claimed = map[string]string{}
	}
	f.claimed[id] = receiverID
	return true, nil
}

func (f *fakeMessageStore) PeerMessagesForUser(_ context.Context, _ string) ([]models.PeerMessage, error) {
	return f.forUser, nil
}

func newTestService(users *fakeUserStore, msgs *fakeMessageStore) *Service {
	return NewService(users, msgs, rand.New(rand.NewSource(7)), zap.NewNop())
}

func TestSubmit(t *testing.T) {
	users := &fakeUserStore{known: map[string]bool{"u1": true}}
	store := &fakeMessageStore{}
	svc := newTestService(users, store)

	msg, err := svc.Submit(context.Background(), "u1", "you've got this")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "u1", msg.SenderID)
	assert.Nil(t, msg.ReceiverID)
	require.NotNil(t, msg.SentAt)
	require.Len(t, store.created, 1)
}

func TestSubmit_UnknownSender(t *testing.T) {
	svc := newTestService(&fakeUserStore{known: map[string]bool{}}, &fakeMessageStore{})
	_, err := svc.Submit(context.Background(), "ghost", "hello")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClaimRandom_ExcludesOwnMessages(t *testing.T) {
	users := &fakeUserStore{known: map[string]bool{"u1": true}}
	store := &fakeMessageStore{unclaimed: []models.PeerMessage{
		{ID: "mine", SenderID: "u1", Message: "from me"},
		{ID: "theirs", SenderID: "u2", Message: "from someone else"},
	}}
	svc := newTestService(users, store)

	for i := 0; i < 5; i++ {
		store.claimed = nil
		msg, err := svc.ClaimRandom(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "theirs", msg.ID)
		require.NotNil(t, msg.ReceiverID)
		assert.Equal(t, "u1", *msg.ReceiverID)
		assert.NotNil(t, msg.ReceivedAt)
	}
}

func TestClaimRandom_NothingAvailable(t *testing.T) {
	users := &fakeUserStore{known: map[string]bool{"u1": true}}
	store := &fakeMessageStore{unclaimed: []models.PeerMessage{
		{ID: "mine", SenderID: "u1"},
	}}
	svc := newTestService(users, store)

	_, err := svc.ClaimRandom(context.Background(), "u1")
	assert.ErrorIs(t, err, apperrors.ErrNoMessagesAvailable)
}

func TestClaimRandom_RetriesAfterLostClaim(t *testing.T) {
	users := &fakeUserStore{known: map[string]bool{"u1": true}}
	store := &fakeMessageStore{
		unclaimed: []models.PeerMessage{
			{ID: "a", SenderID: "u2"},
			{ID: "b", SenderID: "u3"},
		},
		denyFirst: 1,
	}
	svc := newTestService(users, store)

	msg, err := svc.ClaimRandom(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, store.claimed, 1)
	assert.Equal(t, "u1", store.claimed[msg.ID])
}

func TestClaimRandom_AllCandidatesLost(t *testing.T) {
	users := &fakeUserStore{known: map[string]bool{"u1": true}}
	store := &fakeMessageStore{
		unclaimed: []models.PeerMessage{
			{ID: "a", SenderID: "u2"},
			{ID: "b", SenderID: "u3"},
		},
		denyFirst: 2,
	}
	svc := newTestService(users, store)

	_, err := svc.ClaimRandom(context.Background(), "u1")
	assert.ErrorIs(t, err, apperrors.ErrNoMessagesAvailable)
}

func TestListAll_TagsDirection(t *testing.T) {
	users := &fakeUserStore{known: map[string]bool{"u1": true}}
	receiver := "u1"
	store := &fakeMessageStore{forUser: []models.PeerMessage{
		{ID: "s1", SenderID: "u1"},
		{ID: "r1", SenderID: "u2", ReceiverID: &receiver},
	}}
	svc := newTestService(users, store)

	out, err := svc.ListAll(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "sent", out[0].Type)
	assert.Equal(t, "received", out[1].Type)
}
