package config

import "github.com/spf13/viper"

// Env looks up named string values from the process environment. It backs
// the downloader credential lookup so that orchestration code never reads
// the environment directly.
type Env struct {
	v *viper.Viper
}

func NewEnv() *Env {
	v := viper.New()
	v.AutomaticEnv()
	return &Env{v: v}
}

// Str returns the value of the named environment variable, or the empty
// string when it is unset.
func (e *Env) Str(name string) string {
	return e.v.GetString(name)
}
