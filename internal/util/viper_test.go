package util

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestInitViperReadsPrefixedEnv(t *testing.T) {
	t.Setenv("PROMAGG_COMPRESSION_LEVEL", "7")
	v := viper.New()
	InitViper(v)
	v.SetDefault("compression-level", 5)
	require.Equal(t, 7, v.GetInt("compression-level"))
}
