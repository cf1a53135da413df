package errors_test

import (
	"testing"

	"github.com/habiliai/agenteval/errors"
	"github.com/stretchr/testify/require"
)

func TestWrappedSentinelsKeepIdentity(t *testing.T) {
	err := errors.Wrapf(errors.ErrExternalCall, "stage %s", "analyse_agentic_opportunities")
	require.ErrorIs(t, err, errors.ErrExternalCall)
	require.NotErrorIs(t, err, errors.ErrFatalAssembly)
	require.Equal(t, errors.ErrExternalCall, errors.Cause(err))
	require.Contains(t, err.Error(), "agenteval: external call failed")
}
