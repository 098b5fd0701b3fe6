package authz

import (
	"fmt"

	"objectifs-core/internal/shared/apperror"
)

// Role est le rôle applicatif d'un utilisateur (hiérarchie ADMIN > BUM > CONSULTANT)
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleBUM        Role = "BUM"
	RoleConsultant Role = "CONSULTANT"
)

// Valid vérifie que le rôle fait partie des rôles connus
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleBUM || r == RoleConsultant
}

// Identity est l'identité décodée du porteur du token, forme canonique
// injectée par le middleware de session (un seul champ ID, cf. convention)
type Identity struct {
	ID       int64
	Username string
	Role     Role
}

// IsAdmin raccourci pour les contrôles fréquents
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IsBUM raccourci pour les contrôles fréquents
func (i Identity) IsBUM() bool {
	return i.Role == RoleBUM
}

// RequireRole autorise uniquement le rôle exact demandé
func RequireRole(id Identity, role Role) error {
	if id.Role != role {
		return apperror.Forbidden("ROLE_REQUIRED",
			fmt.Sprintf("Accès réservé au rôle %s", role))
	}
	return nil
}

// RequireAnyRole autorise si le rôle de l'identité figure dans la liste
func RequireAnyRole(id Identity, roles ...Role) error {
	for _, r := range roles {
		if id.Role == r {
			return nil
		}
	}
	return apperror.Forbidden("ROLE_REQUIRED", "Accès non autorisé pour ce rôle")
}

// RequireOwnershipOrElevated autorise le propriétaire de la ressource ou
// un rôle élevé explicitement listé
func RequireOwnershipOrElevated(id Identity, ownerID int64, elevated ...Role) error {
	if id.ID == ownerID {
		return nil
	}
	for _, r := range elevated {
		if id.Role == r {
			return nil
		}
	}
	return apperror.Forbidden("NOT_OWNER", "Vous n'êtes pas autorisé à accéder à cette ressource")
}

// IsOwningBUM indique si l'identité est le BUM de rattachement du consultant
// (bum_id nil = consultant non rattaché)
func IsOwningBUM(id Identity, consultantBumID *int64) bool {
	return id.IsBUM() && consultantBumID != nil && *consultantBumID == id.ID
}

// RequireManageable autorise un admin sur n'importe quelle cible et un BUM
// uniquement sur ses propres consultants
func RequireManageable(id Identity, targetBumID *int64) error {
	if id.IsAdmin() {
		return nil
	}
	return RequireManagedBy(id, targetBumID)
}

// RequireManagedBy autorise un BUM uniquement sur ses propres consultants.
// consultantBumID est le bum_id du consultant cible (nil = non rattaché).
// Le refus porte un code distinct du 403 générique pour être testable.
func RequireManagedBy(id Identity, consultantBumID *int64) error {
	if consultantBumID != nil && *consultantBumID == id.ID {
		return nil
	}
	return ErrNotYourConsultant()
}

// ErrNotYourConsultant - un BUM tente d'agir sur le consultant d'un autre BUM
func ErrNotYourConsultant() *apperror.Error {
	return apperror.Forbidden("NOT_YOUR_CONSULTANT",
		"Vous ne pouvez agir que sur vos propres consultants")
}

// ErrNotAConsultant - la cible d'une opération réservée aux consultants n'en est pas un
func ErrNotAConsultant() *apperror.Error {
	return apperror.Validation("NOT_A_CONSULTANT",
		"Vous ne pouvez agir que sur des consultants")
}

// CanViewConsultant indique si l'identité peut consulter les ressources d'un
// consultant donné : lui-même, son BUM, ou un admin
func CanViewConsultant(id Identity, consultantID int64, consultantBumID *int64) bool {
	if id.IsAdmin() || id.ID == consultantID {
		return true
	}
	return IsOwningBUM(id, consultantBumID)
}

// CanEditObjectif indique si l'identité peut modifier la description, le
// statut ou la catégorie d'un objectif : son propriétaire, un admin ou le
// BUM de rattachement du propriétaire
func CanEditObjectif(id Identity, ownerID int64, ownerBumID *int64) bool {
	return id.IsAdmin() || id.ID == ownerID || IsOwningBUM(id, ownerBumID)
}

// CanValidateObjectif indique si l'identité peut toucher au champ
// validatedbyadmin : un admin ou le BUM de rattachement du propriétaire.
// Le consultant propriétaire ne peut pas s'auto-valider.
func CanValidateObjectif(id Identity, ownerBumID *int64) bool {
	return id.IsAdmin() || IsOwningBUM(id, ownerBumID)
}

// CanUseCategorie indique si une catégorie (owner nil = globale) peut être
// attachée à un objectif du consultant targetUserID
func CanUseCategorie(categorieOwnerID *int64, targetUserID int64) bool {
	return categorieOwnerID == nil || *categorieOwnerID == targetUserID
}
