package handler

type ContextKey string

var (
	IdentityCtxKey ContextKey = "identity"
	LeadCtxKey     ContextKey = "lead"
)
