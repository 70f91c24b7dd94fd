package ui

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/config"
	"taskdeck/internal/service"
	"taskdeck/internal/session"
	"taskdeck/internal/testutil"
)

func newTestBoardModel(t *testing.T, svc *testutil.FakeService) (boardModel, *config.Config) {
	t.Helper()
	cfg := &config.Config{Dir: t.TempDir()}
	return newBoardModel(context.Background(), cfg, svc), cfg
}

// loadedBoard runs the initial fetch so the board holds the fake's tasks.
func loadedBoard(t *testing.T, svc *testutil.FakeService) (boardModel, *config.Config) {
	t.Helper()
	m, cfg := newTestBoardModel(t, svc)
	cmd := m.Init()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m, cfg
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func seedBoardTasks(svc *testutil.FakeService) {
	svc.AddTask("n1", "Write docs", "", service.StatusNotStarted)
	svc.AddTask("n2", "Sketch layout", "", service.StatusNotStarted)
	svc.AddTask("p1", "Review patch", "", service.StatusPending)
	svc.AddTask("c1", "Ship release", "", service.StatusCompleted)
}

func TestBoardModel_InitLoadsTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	seedBoardTasks(svc)

	m, _ := loadedBoard(t, svc)

	assert.True(t, m.loaded)
	assert.Len(t, m.buckets.NotStarted, 2)
	assert.Len(t, m.buckets.Pending, 1)
	assert.Len(t, m.buckets.Completed, 1)
}

func TestBoardModel_LoadFailureKeepsPreviousTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	seedBoardTasks(svc)

	m, _ := loadedBoard(t, svc)

	svc.ListTasksErr = assert.AnError
	m, cmd := m.Update(keyRune('r'))
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	assert.Equal(t, loadErrMsg, m.errText)
	// The board still shows the last good list.
	assert.Len(t, m.buckets.NotStarted, 2)
}

func TestBoardModel_LoadDomainErrorVerbatim(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = &service.DomainError{Message: "jwt expired"}

	m, _ := newTestBoardModel(t, svc)
	cmd := m.Init()
	m, _ = m.Update(cmd())

	assert.Equal(t, "jwt expired", m.errText)
}

func TestBoardModel_Navigation(t *testing.T) {
	svc := testutil.NewFakeService()
	seedBoardTasks(svc)

	m, _ := loadedBoard(t, svc)
	require.Equal(t, 0, m.col)

	m, _ = m.Update(keyRune('j'))
	assert.Equal(t, 1, m.row)

	m, _ = m.Update(keyRune('j'))
	assert.Equal(t, 1, m.row, "cursor stops at the last card")

	m, _ = m.Update(keyRune('l'))
	assert.Equal(t, 1, m.col)
	assert.Equal(t, 0, m.row, "cursor clamps to the shorter column")

	m, _ = m.Update(keyRune('h'))
	m, _ = m.Update(keyRune('h'))
	assert.Equal(t, 0, m.col, "cursor stops at the first column")
}

func TestBoardModel_DeleteRefetches(t *testing.T) {
	svc := testutil.NewFakeService()
	seedBoardTasks(svc)

	m, _ := loadedBoard(t, svc)
	callsBefore := svc.ListCalls

	m, cmd := m.Update(keyRune('d'))
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	deleted, ok := cmd().(taskDeletedMsg)
	require.True(t, ok)
	require.NoError(t, deleted.err)

	// Success triggers a full refetch.
	m, cmd = m.Update(deleted)
	assert.False(t, m.busy)
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	assert.Equal(t, callsBefore+1, svc.ListCalls)
	assert.Len(t, m.buckets.NotStarted, 1)
	_, found := svc.FindByTitle("Write docs")
	assert.False(t, found)
}

func TestBoardModel_BusyGuardBlocksSecondMutation(t *testing.T) {
	svc := testutil.NewFakeService()
	seedBoardTasks(svc)

	m, _ := loadedBoard(t, svc)

	m, cmd := m.Update(keyRune('d'))
	require.NotNil(t, cmd)
	require.True(t, m.busy)

	// A second delete while the first is in flight is ignored.
	_, cmd2 := m.Update(keyRune('d'))
	assert.Nil(t, cmd2)
}

func TestBoardModel_BusyGuardBlocksFormOpen(t *testing.T) {
	svc := testutil.NewFakeService()
	seedBoardTasks(svc)

	m, _ := loadedBoard(t, svc)

	// A status change is in flight.
	m, cmd := m.Update(keyRune('s'))
	require.NotNil(t, cmd)
	require.True(t, m.busy)

	// Opening a form now would be closed by the pending taskSavedMsg.
	m, cmd2 := m.Update(keyRune('n'))
	assert.Nil(t, m.form)
	assert.Nil(t, cmd2)

	m, cmd3 := m.Update(keyRune('e'))
	assert.Nil(t, m.form)
	assert.Nil(t, cmd3)
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	got := truncate("日本語のタイトルです", 9)

	assert.True(t, utf8.ValidString(got), "truncation must not split a rune")
	assert.LessOrEqual(t, runewidth.StringWidth(got), 9)
	assert.True(t, strings.HasSuffix(got, "..."))

	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "ab", truncate("ab", 2), "below the ellipsis width nothing is cut")
}

func TestBoardModel_CycleStatus(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("n1", "Write docs", "", service.StatusNotStarted)

	m, _ := loadedBoard(t, svc)

	m, cmd := m.Update(keyRune('s'))
	require.NotNil(t, cmd)

	saved, ok := cmd().(taskSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)

	task, _ := svc.FindByTitle("Write docs")
	assert.Equal(t, service.StatusPending, task.Status)
}

func TestBoardModel_DirectStatusKey(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("n1", "Write docs", "", service.StatusNotStarted)

	m, _ := loadedBoard(t, svc)

	m, cmd := m.Update(keyRune('3'))
	require.NotNil(t, cmd)
	require.NoError(t, cmd().(taskSavedMsg).err)

	task, _ := svc.FindByTitle("Write docs")
	assert.Equal(t, service.StatusCompleted, task.Status)
}

func TestBoardModel_StatusKeyNoopWhenUnchanged(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("n1", "Write docs", "", service.StatusNotStarted)

	m, _ := loadedBoard(t, svc)

	m, cmd := m.Update(keyRune('1'))
	assert.Nil(t, cmd)
	assert.False(t, m.busy)
}

func TestBoardModel_StatusUpdateTransportError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("n1", "Write docs", "", service.StatusNotStarted)

	m, _ := loadedBoard(t, svc)
	svc.UpdateTaskErr = assert.AnError

	m, cmd := m.Update(keyRune('s'))
	require.NotNil(t, cmd)
	m, refetch := m.Update(cmd())

	assert.Equal(t, statusErrMsg, m.errText)
	assert.Nil(t, refetch, "a failed update does not refetch")
	assert.False(t, m.busy)
}

func TestBoardModel_MutationKeysNoopOnEmptyColumn(t *testing.T) {
	svc := testutil.NewFakeService()

	m, _ := loadedBoard(t, svc)

	for _, r := range []rune{'d', 'e', 's', '2'} {
		_, cmd := m.Update(keyRune(r))
		assert.Nil(t, cmd, "key %q should be a no-op with no selection", r)
	}
}

func TestBoardModel_NewTaskFormSubmit(t *testing.T) {
	svc := testutil.NewFakeService()

	m, _ := loadedBoard(t, svc)

	m, cmd := m.Update(keyRune('n'))
	require.NotNil(t, m.form)
	require.NotNil(t, cmd)
	assert.Equal(t, formModeCreate, m.form.mode)

	// Bind values as the form fields would, then submit.
	m.form.title = "Buy milk"
	m.form.description = "two litres"
	m.form.status = service.StatusPending

	m, cmd = m.submitForm()
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	saved := cmd().(taskSavedMsg)
	require.NoError(t, saved.err)

	task, found := svc.FindByTitle("Buy milk")
	require.True(t, found)
	assert.Equal(t, "two litres", task.Description)
	assert.Equal(t, service.StatusPending, task.Status)

	// Success closes the form and refetches.
	m, cmd = m.Update(saved)
	assert.Nil(t, m.form)
	require.NotNil(t, cmd)
}

func TestBoardModel_EditFormPrefills(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("n1", "Write docs", "outline first", service.StatusNotStarted)

	m, _ := loadedBoard(t, svc)

	m, _ = m.Update(keyRune('e'))
	require.NotNil(t, m.form)
	assert.Equal(t, formModeEdit, m.form.mode)
	assert.Equal(t, "n1", m.form.taskID)
	assert.Equal(t, "Write docs", m.form.title)
	assert.Equal(t, "outline first", m.form.description)
	assert.Equal(t, service.StatusNotStarted, m.form.status)
}

func TestBoardModel_SaveFailureKeepsFormOpen(t *testing.T) {
	svc := testutil.NewFakeService()

	m, _ := loadedBoard(t, svc)
	m, _ = m.Update(keyRune('n'))
	require.NotNil(t, m.form)

	m, _ = m.Update(taskSavedMsg{err: assert.AnError, generic: saveErrMsg})

	assert.NotNil(t, m.form, "the form stays open so the user can retry")
	assert.Equal(t, saveErrMsg, m.errText)
	assert.False(t, m.busy)
}

func TestBoardModel_SaveFailureDomainErrorVerbatim(t *testing.T) {
	svc := testutil.NewFakeService()

	m, _ := loadedBoard(t, svc)
	m, _ = m.Update(keyRune('n'))

	m, _ = m.Update(taskSavedMsg{
		err:     &service.DomainError{Message: "Title is required"},
		generic: saveErrMsg,
	})

	assert.Equal(t, "Title is required", m.errText)
}

func TestBoardModel_LogoutClearsSession(t *testing.T) {
	svc := testutil.NewFakeService()
	m, cfg := loadedBoard(t, svc)
	require.NoError(t, session.Save(cfg, "some-token"))

	m, cmd := m.Update(keyRune('L'))
	require.NotNil(t, cmd)
	assert.False(t, session.Exists(cfg))

	_, ok := cmd().(loggedOutMsg)
	assert.True(t, ok)
}

func TestRootModel_RoutesAuthToBoard(t *testing.T) {
	svc := testutil.NewFakeService()
	cfg := &config.Config{Dir: t.TempDir()}
	app := New(cfg, svc, func(ctx context.Context, token string) service.Service { return svc })

	root := newRootModel(context.Background(), app)
	assert.Equal(t, viewAuth, root.view)

	model, cmd := root.Update(authenticatedMsg{token: "token-ada"})
	root = model.(rootModel)
	assert.Equal(t, viewBoard, root.view)
	require.NotNil(t, cmd, "the board loads its tasks on entry")
}

func TestRootModel_StartsOnBoardWhenLoggedIn(t *testing.T) {
	svc := testutil.NewFakeService()
	cfg := &config.Config{Dir: t.TempDir()}
	require.NoError(t, session.Save(cfg, "token-ada"))
	app := New(cfg, svc, func(ctx context.Context, token string) service.Service { return svc })

	root := newRootModel(context.Background(), app)
	assert.Equal(t, viewBoard, root.view)
}

func TestRootModel_LogoutReturnsToAuth(t *testing.T) {
	svc := testutil.NewFakeService()
	cfg := &config.Config{Dir: t.TempDir()}
	require.NoError(t, session.Save(cfg, "token-ada"))
	app := New(cfg, svc, func(ctx context.Context, token string) service.Service { return svc })

	root := newRootModel(context.Background(), app)
	model, _ := root.Update(loggedOutMsg{})
	root = model.(rootModel)

	assert.Equal(t, viewAuth, root.view)
	assert.Equal(t, modeSignup, root.auth.mode, "a fresh auth form is shown")
}
