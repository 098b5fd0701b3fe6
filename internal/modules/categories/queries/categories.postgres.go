package queries

// CategorieQueries regroupe toutes les requêtes SQL des catégories
var CategorieQueries = struct {
	ListVisible     string
	Get             string
	GetUserForAuthz string
	CountForOwner   string
	Insert          string
	Update          string
	CountUsage      string
	Delete          string
}{
	/**
	 * Liste les catégories globales et les catégories privées d'un
	 * utilisateur, avec le nombre d'objectifs rattachés
	 * Paramètres: $1 = user_id (NULL = globales uniquement)
	 */
	ListVisible: `
		SELECT c.id, c.nom, c.description, c.couleur, c.user_id, c.ordre,
		       c.icone, COUNT(o.id), c.created_at
		FROM categorie c
		LEFT JOIN objectif o ON o.categorie_id = c.id
		WHERE c.user_id IS NULL OR c.user_id = $1
		GROUP BY c.id
		ORDER BY c.ordre NULLS LAST, c.created_at DESC
	`,

	/**
	 * Paramètres: $1 = id
	 */
	Get: `
		SELECT id, nom, description, couleur, user_id, ordre, icone, created_at
		FROM categorie
		WHERE id = $1
	`,

	/**
	 * Récupère un consultant cible pour la création déléguée
	 * Paramètres: $1 = id
	 */
	GetUserForAuthz: `
		SELECT id, bum_id
		FROM app_user
		WHERE id = $1
	`,

	/**
	 * Compte les catégories d'un propriétaire (NULL = globales), utilisé
	 * pour faire tourner la palette de couleurs par défaut
	 * Paramètres: $1 = user_id
	 */
	CountForOwner: `
		SELECT COUNT(*)
		FROM categorie
		WHERE COALESCE(user_id, 0) = COALESCE($1, 0)
	`,

	/**
	 * Crée une catégorie
	 * Paramètres: $1 = nom, $2 = description, $3 = couleur, $4 = user_id,
	 *             $5 = ordre, $6 = icone
	 */
	Insert: `
		INSERT INTO categorie (nom, description, couleur, user_id, ordre, icone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, nom, description, couleur, user_id, ordre, icone, created_at
	`,

	/**
	 * Met à jour une catégorie ; les paramètres NULL conservent la valeur
	 * existante
	 * Paramètres: $1 = id, $2 = nom, $3 = description, $4 = couleur,
	 *             $5 = ordre, $6 = icone
	 */
	Update: `
		UPDATE categorie SET
			nom         = COALESCE($2, nom),
			description = COALESCE($3, description),
			couleur     = COALESCE($4, couleur),
			ordre       = COALESCE($5, ordre),
			icone       = COALESCE($6, icone)
		WHERE id = $1
		RETURNING id, nom, description, couleur, user_id, ordre, icone, created_at
	`,

	/**
	 * Compte les objectifs rattachés à une catégorie
	 * Paramètres: $1 = categorie_id
	 */
	CountUsage: `
		SELECT COUNT(*)
		FROM objectif
		WHERE categorie_id = $1
	`,

	/**
	 * Paramètres: $1 = id
	 */
	Delete: `
		DELETE FROM categorie WHERE id = $1
	`,
}
