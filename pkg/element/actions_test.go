package element

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amtsnh/playwrightFramework/pkg/logging"
)

func TestClickAndDblClick(t *testing.T) {
	f := newFixture(t)
	button := newEl("Go")
	f.mount("#go", button)

	h := New(f.sess, "#go")
	require.NoError(t, h.Click())
	require.NoError(t, h.DblClick())

	assert.Equal(t, 1, button.clicks)
	assert.Equal(t, 1, button.dblclicks)
}

func TestCheckSkipsDisabledControl(t *testing.T) {
	f := newFixture(t)

	box := newEl("")
	box.props["disabled"] = "true"
	f.mount("#terms", box)

	h := New(f.sess, "#terms", Options{Description: "terms checkbox"})
	require.NoError(t, h.Check(), "a disabled control is skipped, not failed")
	require.NoError(t, h.Uncheck())

	assert.Zero(t, box.checks, "skip must not reach the engine")
	assert.Zero(t, box.unchecks)
}

func TestCheckEnabledControl(t *testing.T) {
	f := newFixture(t)

	box := newEl("")
	f.mount("#terms", box)

	h := New(f.sess, "#terms")
	require.NoError(t, h.Check())
	require.NoError(t, h.Uncheck())

	assert.Equal(t, 1, box.checks)
	assert.Equal(t, 1, box.unchecks)
}

func TestClearAndSetValue(t *testing.T) {
	f := newFixture(t)
	input := newEl("")
	f.mount("#name", input)

	h := New(f.sess, "#name")
	require.NoError(t, h.Clear())
	require.NoError(t, h.SetValue("Alice"))

	assert.Equal(t, 1, input.cleared)
	assert.Equal(t, []string{"Alice"}, input.fills)
}

func TestTypeAndPress(t *testing.T) {
	f := newFixture(t)
	input := newEl("")
	f.mount("#search", input)

	h := New(f.sess, "#search")
	require.NoError(t, h.Type("query", TypeOptions{Delay: 25}))
	require.NoError(t, h.PressSequentially("more"))
	require.NoError(t, h.Press("Enter"))

	assert.Equal(t, []string{"query", "more"}, input.typed)
	assert.Equal(t, []string{"Enter"}, input.pressed)
}

func TestSelectOptions(t *testing.T) {
	f := newFixture(t)
	dropdown := newEl("")
	f.mount("#country", dropdown)

	h := New(f.sess, "#country")
	require.NoError(t, h.SelectByText("Denmark", "Sweden"))
	require.NoError(t, h.SelectByIndex(2))

	assert.Equal(t, []string{"Denmark", "Sweden", "#2"}, dropdown.selected)
}

func TestTextTrims(t *testing.T) {
	f := newFixture(t)
	f.mount("#msg", newEl("  hello world \n"))

	h := New(f.sess, "#msg")
	got, err := h.Text()
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
}

func TestAllTextsOrdered(t *testing.T) {
	f := newFixture(t)
	f.mount("li", newEl(" one "), newEl("two"), newEl("\tthree"))

	h := New(f.sess, "li")
	got, err := h.AllTexts()
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, got)
	assert.Equal(t, "li", h.Effective())
}

func TestPropertyAttributeCSS(t *testing.T) {
	f := newFixture(t)

	input := newEl("")
	input.props["value"] = "draft"
	input.attrs["data-id"] = "42"
	input.styles["background-color"] = "rgb(0, 128, 0)"
	f.mount("#field", input)

	h := New(f.sess, "#field")

	got, err := h.Property("value")
	require.NoError(t, err)
	assert.Equal(t, "draft", got)

	got, err = h.Property("missing")
	require.NoError(t, err)
	assert.Empty(t, got, "absent properties read as empty, not as an error")

	got, err = h.Attribute("data-id")
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	got, err = h.CSS("background-color")
	require.NoError(t, err)
	assert.Equal(t, "rgb(0, 128, 0)", got)
}

// sessionLog reads back everything the fixture session has logged.
func sessionLog(t *testing.T, f *fixture) string {
	t.Helper()
	logPath := f.sess.Logger().LogPath()
	require.NotEmpty(t, logPath, "fixture session should log to a file")
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	return string(data)
}

func TestReadActionsEmitLogLine(t *testing.T) {
	f := newFixture(t)

	el := newEl(" shipped ")
	el.attrs["data-id"] = "order-77"
	el.styles["color"] = "rgb(255, 0, 0)"
	f.mount("#status", el)

	h := New(f.sess, "#status", Options{Description: "status cell"})

	got, err := h.Text()
	require.NoError(t, err)
	assert.Equal(t, "shipped", got)

	_, err = h.Attribute("data-id")
	require.NoError(t, err)

	_, err = h.CSS("color")
	require.NoError(t, err)

	logged := sessionLog(t, f)
	assert.Contains(t, logged, `read text "status cell" value="shipped"`)
	assert.Contains(t, logged, `read attribute data-id "status cell" value="order-77"`)
	assert.Contains(t, logged, `read css color "status cell"`)
}

func TestSetValueMasksPasswordInLog(t *testing.T) {
	f := newFixture(t)
	f.mount("#pw", newEl(""))

	h := New(f.sess, "#pw", Options{Description: "password field"})
	require.NoError(t, h.SetValue("hunter2-xk9"))

	logged := sessionLog(t, f)
	assert.Contains(t, logged, logging.Redacted)
	assert.NotContains(t, logged, "hunter2-xk9")
}

func TestTextMasksPasswordInLog(t *testing.T) {
	f := newFixture(t)
	f.mount("#pw", newEl("prefilled-pq7"))

	h := New(f.sess, "#pw", Options{Description: "password field"})
	got, err := h.Text()
	require.NoError(t, err)
	assert.Equal(t, "prefilled-pq7", got, "masking applies to the log, not the returned value")

	assert.NotContains(t, sessionLog(t, f), "prefilled-pq7")
}

func TestExistsAndCountOnZeroMatches(t *testing.T) {
	f := newFixture(t)

	h := New(f.sess, "#nothing-here")

	exists, err := h.Exists()
	require.NoError(t, err, "zero matches is an answer, not an error")
	assert.False(t, exists)

	n, err := h.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExistsAndCountOnMatches(t *testing.T) {
	f := newFixture(t)
	f.mount("li", newEl("a"), newEl("b"))

	h := New(f.sess, "li")

	exists, err := h.Exists()
	require.NoError(t, err)
	assert.True(t, exists)

	n, err := h.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
