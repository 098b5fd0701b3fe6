package queries

// ObjectifQueries regroupe toutes les requêtes SQL des objectifs
var ObjectifQueries = struct {
	ListByUserYear    string
	ListAllByYear     string
	ListForBumByYear  string
	Insert            string
	GetForAuthz       string
	Update            string
	Delete            string
	GetUserForAuthz   string
	GetCategorieOwner string
}{
	/**
	 * Liste les objectifs d'un utilisateur pour une année, catégorie jointe
	 * Paramètres: $1 = user_id, $2 = annee
	 */
	ListByUserYear: `
		SELECT o.id, o.description, o.status, o.validated_by_admin, o.annee,
		       o.user_id, o.categorie_id, o.created_at,
		       c.id, c.nom, c.couleur, c.icone
		FROM objectif o
		LEFT JOIN categorie c ON c.id = o.categorie_id
		WHERE o.user_id = $1 AND o.annee = $2
		ORDER BY o.created_at DESC
	`,

	/**
	 * Liste tous les objectifs d'une année avec auteur et catégorie
	 * Paramètres: $1 = annee
	 */
	ListAllByYear: `
		SELECT o.id, o.description, o.status, o.validated_by_admin, o.annee,
		       o.user_id, u.username, o.categorie_id, o.created_at,
		       c.id, c.nom, c.couleur, c.icone
		FROM objectif o
		JOIN app_user u ON u.id = o.user_id
		LEFT JOIN categorie c ON c.id = o.categorie_id
		WHERE o.annee = $1
		ORDER BY o.created_at DESC
	`,

	/**
	 * Liste les objectifs des consultants d'un BUM pour une année
	 * Paramètres: $1 = bum_id, $2 = annee
	 */
	ListForBumByYear: `
		SELECT o.id, o.description, o.status, o.validated_by_admin, o.annee,
		       o.user_id, u.username, o.categorie_id, o.created_at,
		       c.id, c.nom, c.couleur, c.icone
		FROM objectif o
		JOIN app_user u ON u.id = o.user_id
		LEFT JOIN categorie c ON c.id = o.categorie_id
		WHERE u.bum_id = $1 AND o.annee = $2
		ORDER BY o.created_at DESC
	`,

	/**
	 * Crée un objectif ; status et validated_by_admin suivent les défauts du schéma
	 * Paramètres: $1 = description, $2 = annee, $3 = user_id, $4 = categorie_id
	 */
	Insert: `
		INSERT INTO objectif (description, annee, user_id, categorie_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, description, status, validated_by_admin, annee,
		          user_id, categorie_id, created_at
	`,

	/**
	 * Récupère les champs nécessaires aux décisions d'autorisation :
	 * le propriétaire de l'objectif et son BUM
	 * Paramètres: $1 = id
	 */
	GetForAuthz: `
		SELECT o.id, o.user_id, o.validated_by_admin, u.bum_id
		FROM objectif o
		JOIN app_user u ON u.id = o.user_id
		WHERE o.id = $1
	`,

	/**
	 * Met à jour un objectif ; les paramètres NULL conservent la valeur existante
	 * Paramètres: $1 = id, $2 = description, $3 = status, $4 = categorie_id,
	 *             $5 = validated_by_admin
	 */
	Update: `
		UPDATE objectif SET
			description        = COALESCE($2, description),
			status             = COALESCE($3, status),
			categorie_id       = COALESCE($4, categorie_id),
			validated_by_admin = COALESCE($5, validated_by_admin)
		WHERE id = $1
		RETURNING id, description, status, validated_by_admin, annee,
		          user_id, categorie_id, created_at
	`,

	/**
	 * Supprime un objectif ; les commentaires suivent en cascade
	 * Paramètres: $1 = id
	 */
	Delete: `
		DELETE FROM objectif WHERE id = $1
	`,

	/**
	 * Récupère un utilisateur cible pour les créations déléguées
	 * Paramètres: $1 = id
	 */
	GetUserForAuthz: `
		SELECT id, role, bum_id
		FROM app_user
		WHERE id = $1
	`,

	/**
	 * Récupère le propriétaire d'une catégorie (NULL = globale)
	 * Paramètres: $1 = id
	 */
	GetCategorieOwner: `
		SELECT user_id
		FROM categorie
		WHERE id = $1
	`,
}

// CommentaireQueries regroupe toutes les requêtes SQL des commentaires
var CommentaireQueries = struct {
	ListByObjectif string
	Insert         string
	GetForAuthz    string
	Update         string
	Delete         string
}{
	/**
	 * Liste les commentaires d'un objectif, auteur joint, du plus récent
	 * au plus ancien
	 * Paramètres: $1 = objectif_id
	 */
	ListByObjectif: `
		SELECT cm.id, cm.contenu, cm.objectif_id, cm.user_id, u.username,
		       cm.created_at, cm.updated_at
		FROM commentaire cm
		JOIN app_user u ON u.id = cm.user_id
		WHERE cm.objectif_id = $1
		ORDER BY cm.created_at DESC
	`,

	/**
	 * Crée un commentaire
	 * Paramètres: $1 = contenu, $2 = objectif_id, $3 = user_id
	 */
	Insert: `
		INSERT INTO commentaire (contenu, objectif_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, contenu, objectif_id, user_id, created_at, updated_at
	`,

	/**
	 * Récupère l'auteur du commentaire, le propriétaire de l'objectif
	 * et le BUM de ce propriétaire
	 * Paramètres: $1 = id
	 */
	GetForAuthz: `
		SELECT cm.id, cm.user_id, o.user_id, u.bum_id
		FROM commentaire cm
		JOIN objectif o ON o.id = cm.objectif_id
		JOIN app_user u ON u.id = o.user_id
		WHERE cm.id = $1
	`,

	/**
	 * Modifie le contenu d'un commentaire et date la modification
	 * Paramètres: $1 = id, $2 = contenu
	 */
	Update: `
		UPDATE commentaire SET contenu = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, contenu, objectif_id, user_id, created_at, updated_at
	`,

	/**
	 * Paramètres: $1 = id
	 */
	Delete: `
		DELETE FROM commentaire WHERE id = $1
	`,
}
