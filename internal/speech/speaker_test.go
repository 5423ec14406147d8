package speech

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCommandSpeakerRequiresCommand(t *testing.T) {
	_, err := NewCommandSpeaker("", nil)
	require.ErrorIs(t, err, ErrUnsupported)

	_, err = NewCommandSpeaker("no-such-synthesizer-binary --fast", nil)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestCommandSpeakerStarts(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	s, err := NewCommandSpeaker("true -x", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"-x"}, s.args)
	require.NoError(t, s.Speak("Preheat the oven. Mix the batter"))
}

func TestUnsupported(t *testing.T) {
	require.ErrorIs(t, Unsupported{}.Speak("hello"), ErrUnsupported)
}
