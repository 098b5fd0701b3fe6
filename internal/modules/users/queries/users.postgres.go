package queries

// UserQueries regroupe toutes les requêtes SQL pour la gestion des utilisateurs
var UserQueries = struct {
	ListAll         string
	ListTeamOfBum   string
	ListConsultants string
	GetForAuthz     string
	Insert          string
	Update          string
	Delete          string
}{
	/**
	 * Liste tous les utilisateurs avec le nom de leur business unit
	 */
	ListAll: `
		SELECT u.id, u.username, u.email, u.role, u.business_unit_id, u.bum_id,
		       bu.nom, u.created_at
		FROM app_user u
		LEFT JOIN business_unit bu ON bu.id = u.business_unit_id
		ORDER BY u.username
	`,

	/**
	 * Liste les consultants rattachés à un BUM
	 * Paramètres: $1 = bum_id
	 */
	ListTeamOfBum: `
		SELECT u.id, u.username, u.email, u.role, u.business_unit_id, u.bum_id,
		       bu.nom, u.created_at
		FROM app_user u
		LEFT JOIN business_unit bu ON bu.id = u.business_unit_id
		WHERE u.bum_id = $1
		ORDER BY u.username
	`,

	/**
	 * Liste tous les consultants (vue "mon équipe" côté admin)
	 */
	ListConsultants: `
		SELECT u.id, u.username, u.email, u.role, u.business_unit_id, u.bum_id,
		       bu.nom, u.created_at
		FROM app_user u
		LEFT JOIN business_unit bu ON bu.id = u.business_unit_id
		WHERE u.role = 'CONSULTANT'
		ORDER BY u.username
	`,

	/**
	 * Récupère les champs nécessaires aux décisions d'autorisation
	 * Paramètres: $1 = id
	 */
	GetForAuthz: `
		SELECT id, role, bum_id
		FROM app_user
		WHERE id = $1
	`,

	/**
	 * Crée un utilisateur
	 * Paramètres: $1 = username, $2 = password_hash, $3 = email,
	 *             $4 = role, $5 = business_unit_id, $6 = bum_id
	 */
	Insert: `
		INSERT INTO app_user (username, password_hash, email, role, business_unit_id, bum_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, username, email, role, business_unit_id, bum_id, created_at
	`,

	/**
	 * Met à jour un utilisateur ; les paramètres NULL conservent la valeur existante
	 * Paramètres: $1 = id, $2 = username, $3 = password_hash, $4 = email,
	 *             $5 = role, $6 = business_unit_id, $7 = bum_id
	 */
	Update: `
		UPDATE app_user SET
			username         = COALESCE($2, username),
			password_hash    = COALESCE($3, password_hash),
			email            = COALESCE($4, email),
			role             = COALESCE($5, role),
			business_unit_id = COALESCE($6, business_unit_id),
			bum_id           = COALESCE($7, bum_id)
		WHERE id = $1
		RETURNING id, username, email, role, business_unit_id, bum_id, created_at
	`,

	/**
	 * Supprime un utilisateur ; les objectifs et commentaires suivent en cascade
	 * Paramètres: $1 = id
	 */
	Delete: `
		DELETE FROM app_user WHERE id = $1
	`,
}

// BusinessUnitQueries regroupe les requêtes SQL des business units
var BusinessUnitQueries = struct {
	List   string
	Insert string
}{
	List: `
		SELECT id, nom, created_at
		FROM business_unit
		ORDER BY nom
	`,

	/**
	 * Paramètres: $1 = nom
	 */
	Insert: `
		INSERT INTO business_unit (nom)
		VALUES ($1)
		RETURNING id, nom, created_at
	`,
}
