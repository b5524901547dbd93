package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carconvo/internal/models/domain_models"
	mem "carconvo/pkg/memcache"
	"carconvo/pkg/utils"
)

func newTestSessions(t *testing.T) SessionServiceInterface {
	t.Helper()
	matcher := newTestMatcher(t,
		testVehicle("cheap", 24000, scoresWith(map[domain_models.Dimension]float64{
			domain_models.DimBudgetConscious: 9,
			domain_models.DimCommuter:        8,
		})),
		testVehicle("mid", 33000, scoresWith(map[domain_models.Dimension]float64{
			domain_models.DimFamilyFriendly: 8,
			domain_models.DimSafetyFocused:  8,
		})),
		testVehicle("premium", 60000, scoresWith(map[domain_models.Dimension]float64{
			domain_models.DimLuxury:      9,
			domain_models.DimPerformance: 9,
		})),
	)
	return NewSessionService(mem.NewSessionStore(), matcher)
}

func TestSessionLifecycle(t *testing.T) {
	svc := newTestSessions(t)
	profile := scoresWith(map[domain_models.Dimension]float64{domain_models.DimCommuter: 9})

	t.Run("create and read back", func(t *testing.T) {
		id := svc.Create(profile)
		require.NotEmpty(t, id)

		sess, err := svc.Get(id)
		require.NoError(t, err)
		assert.Equal(t, id, sess.ID)
		assert.Equal(t, profile, sess.Profile)
		assert.Empty(t, sess.History)
		assert.Empty(t, sess.Results)
		assert.Nil(t, sess.Budget)
	})

	t.Run("each session gets its own id", func(t *testing.T) {
		assert.NotEqual(t, svc.Create(profile), svc.Create(profile))
	})

	t.Run("unknown ids", func(t *testing.T) {
		_, err := svc.Get("missing")
		assert.ErrorIs(t, err, utils.ErrUnknownSession)
		assert.ErrorIs(t, svc.RecordTurn("missing", domain_models.RoleUser, "hi"), utils.ErrUnknownSession)
		assert.ErrorIs(t, svc.SetBudget("missing", 30000), utils.ErrUnknownSession)
		_, err = svc.Rescore("missing", domain_models.FilterHints{})
		assert.ErrorIs(t, err, utils.ErrUnknownSession)
	})

	t.Run("turns append in order", func(t *testing.T) {
		id := svc.Create(profile)
		require.NoError(t, svc.RecordTurn(id, domain_models.RoleUser, "show me sedans"))
		require.NoError(t, svc.RecordTurn(id, domain_models.RoleAssistant, "here you go"))

		sess, err := svc.Get(id)
		require.NoError(t, err)
		require.Len(t, sess.History, 2)
		assert.Equal(t, domain_models.RoleUser, sess.History[0].Role)
		assert.Equal(t, "show me sedans", sess.History[0].Content)
		assert.Equal(t, domain_models.RoleAssistant, sess.History[1].Role)
		assert.False(t, sess.History[0].Timestamp.IsZero())
	})

	t.Run("budget sticks and ignores non-positive values", func(t *testing.T) {
		id := svc.Create(profile)
		require.NoError(t, svc.SetBudget(id, 30000))
		require.NoError(t, svc.SetBudget(id, 0))

		sess, err := svc.Get(id)
		require.NoError(t, err)
		require.NotNil(t, sess.Budget)
		assert.Equal(t, 30000, *sess.Budget)
	})
}

func TestSessionRescore(t *testing.T) {
	profile := scoresWith(map[domain_models.Dimension]float64{
		domain_models.DimBudgetConscious: 9,
		domain_models.DimCommuter:        8,
	})

	t.Run("stores the ranking on the session", func(t *testing.T) {
		svc := newTestSessions(t)
		id := svc.Create(profile)

		results, err := svc.Rescore(id, domain_models.FilterHints{})
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "cheap", results[0].Vehicle.ID)

		sess, err := svc.Get(id)
		require.NoError(t, err)
		assert.Equal(t, results, sess.Results)
	})

	t.Run("identical rescores produce identical orderings", func(t *testing.T) {
		svc := newTestSessions(t)
		id := svc.Create(profile)
		require.NoError(t, svc.SetBudget(id, 35000))

		first, err := svc.Rescore(id, domain_models.FilterHints{})
		require.NoError(t, err)
		second, err := svc.Rescore(id, domain_models.FilterHints{})
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("hints accumulate across turns", func(t *testing.T) {
		svc := newTestSessions(t)
		id := svc.Create(profile)

		_, err := svc.Rescore(id, domain_models.FilterHints{MaxPrice: 40000})
		require.NoError(t, err)
		results, err := svc.Rescore(id, domain_models.FilterHints{MinSeating: 5})
		require.NoError(t, err)

		for _, r := range results {
			assert.LessOrEqual(t, r.Vehicle.BasicInfo.MSRP, 40000, "earlier price cap still applies")
		}
	})

	t.Run("hints filtering everything leaves an empty result", func(t *testing.T) {
		svc := newTestSessions(t)
		id := svc.Create(profile)

		results, err := svc.Rescore(id, domain_models.FilterHints{MinHorsepower: 900})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("concurrent rescores settle on one complete ranking", func(t *testing.T) {
		svc := newTestSessions(t)
		id := svc.Create(profile)

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Rescore(id, domain_models.FilterHints{})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		reference, err := svc.Rescore(id, domain_models.FilterHints{})
		require.NoError(t, err)
		sess, err := svc.Get(id)
		require.NoError(t, err)
		assert.Equal(t, reference, sess.Results)
	})

	t.Run("independent sessions do not share state", func(t *testing.T) {
		svc := newTestSessions(t)
		first := svc.Create(profile)
		second := svc.Create(profile)

		_, err := svc.Rescore(first, domain_models.FilterHints{MaxPrice: 25000})
		require.NoError(t, err)
		results, err := svc.Rescore(second, domain_models.FilterHints{})
		require.NoError(t, err)
		assert.Len(t, results, 3, "the other session's price cap must not leak")
	})
}
