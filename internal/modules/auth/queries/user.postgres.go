package queries

// AuthQueries regroupe toutes les requêtes SQL pour l'authentification
var AuthQueries = struct {
	GetByUsername string
	GetByID       string
	Insert        string
}{
	/**
	 * Récupère un utilisateur complet (avec hash) par username
	 * Paramètres: $1 = username
	 */
	GetByUsername: `
		SELECT id, username, password_hash, email, role, business_unit_id, bum_id, created_at
		FROM app_user
		WHERE username = $1
	`,

	/**
	 * Récupère un utilisateur par identifiant (sans hash)
	 * Paramètres: $1 = id
	 */
	GetByID: `
		SELECT id, username, email, role, business_unit_id, bum_id, created_at
		FROM app_user
		WHERE id = $1
	`,

	/**
	 * Crée un utilisateur auto-inscrit
	 * Paramètres: $1 = username, $2 = password_hash, $3 = role
	 */
	Insert: `
		INSERT INTO app_user (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, role, business_unit_id, bum_id, created_at
	`,
}
