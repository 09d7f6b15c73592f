package output

type ConfigPort interface {
	Get(key string) string
	MustGet(key string) string
	GetBool(key string, fallback bool) bool
	GetInt(key string, fallback int) int
}
