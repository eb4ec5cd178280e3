package internal

type RunEnv string

const (
	Development RunEnv = "development"
	Production  RunEnv = "production"
)
