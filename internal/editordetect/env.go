package editordetect

import "strings"

// EnvFromOS converts os.Environ() output into an Env.
func EnvFromOS(environ []string) Env {
	env := Env{}
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i > 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	return env
}
