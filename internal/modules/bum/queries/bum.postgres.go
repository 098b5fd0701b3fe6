package queries

// BumQueries regroupe toutes les requêtes SQL du périmètre BUM
var BumQueries = struct {
	TeamStats               string
	GetBusinessUnit         string
	ListMembers             string
	ListConsultants         string
	ListTeamObjectifs       string
	GetBusinessUnitID       string
	InsertConsultant        string
	GetConsultantForAuthz   string
	DeleteConsultant        string
	ListConsultantObjectifs string
	ListConsultantComments  string
	GetObjectifForAuthz     string
	UpdateObjectif          string
	InsertCommentaire       string
}{
	/**
	 * Agrégat unique des indicateurs d'équipe d'un BUM
	 * Paramètres: $1 = bum_id
	 */
	TeamStats: `
		SELECT COUNT(DISTINCT u.id),
		       COUNT(o.id),
		       COUNT(o.id) FILTER (WHERE o.validated_by_admin),
		       COUNT(o.id) FILTER (WHERE o.status = 'En cours')
		FROM app_user u
		LEFT JOIN objectif o ON o.user_id = u.id
		WHERE u.bum_id = $1
	`,

	/**
	 * Business unit d'un utilisateur ; aucune ligne si non rattaché
	 * Paramètres: $1 = user_id
	 */
	GetBusinessUnit: `
		SELECT bu.id, bu.nom, bu.created_at
		FROM app_user me
		JOIN business_unit bu ON bu.id = me.business_unit_id
		WHERE me.id = $1
	`,

	/**
	 * Membres d'une business unit
	 * Paramètres: $1 = business_unit_id
	 */
	ListMembers: `
		SELECT id, username, role
		FROM app_user
		WHERE business_unit_id = $1
		ORDER BY username
	`,

	/**
	 * Consultants d'un BUM avec leur business unit
	 * Paramètres: $1 = bum_id
	 */
	ListConsultants: `
		SELECT u.id, u.username, u.email, u.role, u.business_unit_id,
		       bu.nom, u.created_at
		FROM app_user u
		LEFT JOIN business_unit bu ON bu.id = u.business_unit_id
		WHERE u.bum_id = $1
		ORDER BY u.username
	`,

	/**
	 * Objectifs de tous les consultants d'un BUM, catégorie jointe
	 * Paramètres: $1 = bum_id
	 */
	ListTeamObjectifs: `
		SELECT o.id, o.description, o.status, o.validated_by_admin, o.annee,
		       o.user_id, o.categorie_id, o.created_at,
		       c.id, c.nom, c.couleur, c.icone
		FROM objectif o
		JOIN app_user u ON u.id = o.user_id
		LEFT JOIN categorie c ON c.id = o.categorie_id
		WHERE u.bum_id = $1
		ORDER BY o.created_at DESC
	`,

	/**
	 * Business unit de rattachement d'un utilisateur
	 * Paramètres: $1 = id
	 */
	GetBusinessUnitID: `
		SELECT business_unit_id
		FROM app_user
		WHERE id = $1
	`,

	/**
	 * Provisionne un consultant rattaché au BUM et à sa business unit
	 * Paramètres: $1 = username, $2 = password_hash, $3 = email,
	 *             $4 = bum_id, $5 = business_unit_id
	 */
	InsertConsultant: `
		INSERT INTO app_user (username, password_hash, email, role, bum_id, business_unit_id)
		VALUES ($1, $2, $3, 'CONSULTANT', $4, $5)
		RETURNING id, username, email, role, business_unit_id, created_at
	`,

	/**
	 * Paramètres: $1 = id
	 */
	GetConsultantForAuthz: `
		SELECT id, role, bum_id
		FROM app_user
		WHERE id = $1
	`,

	/**
	 * Paramètres: $1 = id
	 */
	DeleteConsultant: `
		DELETE FROM app_user WHERE id = $1
	`,

	/**
	 * Objectifs d'un consultant avec catégorie, du plus récent au plus ancien
	 * Paramètres: $1 = user_id
	 */
	ListConsultantObjectifs: `
		SELECT o.id, o.description, o.status, o.validated_by_admin, o.annee,
		       o.user_id, o.categorie_id, o.created_at,
		       c.id, c.nom, c.couleur, c.icone
		FROM objectif o
		LEFT JOIN categorie c ON c.id = o.categorie_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC
	`,

	/**
	 * Commentaires sur les objectifs d'un consultant, auteurs joints
	 * Paramètres: $1 = user_id (propriétaire des objectifs)
	 */
	ListConsultantComments: `
		SELECT cm.id, cm.contenu, cm.objectif_id, cm.user_id, a.username,
		       cm.created_at, cm.updated_at
		FROM commentaire cm
		JOIN objectif o ON o.id = cm.objectif_id
		JOIN app_user a ON a.id = cm.user_id
		WHERE o.user_id = $1
		ORDER BY cm.created_at DESC
	`,

	/**
	 * Propriétaire d'un objectif et BUM de ce propriétaire
	 * Paramètres: $1 = id
	 */
	GetObjectifForAuthz: `
		SELECT o.id, o.user_id, u.bum_id
		FROM objectif o
		JOIN app_user u ON u.id = o.user_id
		WHERE o.id = $1
	`,

	/**
	 * Revue d'un objectif ; les paramètres NULL conservent la valeur existante
	 * Paramètres: $1 = id, $2 = validated_by_admin, $3 = status
	 */
	UpdateObjectif: `
		UPDATE objectif SET
			validated_by_admin = COALESCE($2, validated_by_admin),
			status             = COALESCE($3, status)
		WHERE id = $1
		RETURNING id, description, status, validated_by_admin, annee,
		          user_id, categorie_id, created_at
	`,

	/**
	 * Paramètres: $1 = contenu, $2 = objectif_id, $3 = user_id
	 */
	InsertCommentaire: `
		INSERT INTO commentaire (contenu, objectif_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, contenu, objectif_id, user_id, created_at, updated_at
	`,
}
