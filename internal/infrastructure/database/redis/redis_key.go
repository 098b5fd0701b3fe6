package redis

import "fmt"

// KeyGenerator génère les clés Redis selon la convention
// objectifs_{environnement}_{domain}:{identifier}
type KeyGenerator struct {
	environment string
}

func NewKeyGenerator(environment string) *KeyGenerator {
	return &KeyGenerator{environment: environment}
}

// LoginAttempts clé du compteur de tentatives de connexion échouées
func (kg *KeyGenerator) LoginAttempts(username string) string {
	return fmt.Sprintf("objectifs_%s_auth_attempts:%s", kg.environment, username)
}

// RevokedToken clé de la liste de révocation (logout), indexée par jti
func (kg *KeyGenerator) RevokedToken(jti string) string {
	return fmt.Sprintf("objectifs_%s_auth_revoked:%s", kg.environment, jti)
}
