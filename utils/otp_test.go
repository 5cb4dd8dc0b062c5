package utils

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateOTP_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		otp := GenerateOTP()
		require.Len(t, otp, 4)

		n, err := strconv.Atoi(otp)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 1000)
		require.LessOrEqual(t, n, 9999)
	}
}

func TestBuildOTPBody(t *testing.T) {
	body := BuildOTPBody("4821", 10)
	require.True(t, strings.Contains(body, "4821"))
	require.True(t, strings.Contains(body, "10 minutes"))
}
