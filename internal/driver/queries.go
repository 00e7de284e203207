package driver

// The graph schema is deliberately small: Entity nodes unique by normalized
// name, RELATION edges keyed by (source, relation label, target). The
// mentions counter makes create-vs-merge observable to the caller and
// counts supporting observations across the corpus.
const (
	MergeEntityQuery = `
		MERGE (n:Entity {name: $name})
		ON CREATE SET n.created_at = $created_at, n.mentions = 1
		ON MATCH SET n.mentions = n.mentions + 1
		RETURN n.mentions = 1 AS created
	`

	MergeRelationQuery = `
		MATCH (f:Entity {name: $subject})
		MATCH (t:Entity {name: $object})
		MERGE (f)-[r:RELATION {name: $relation}]->(t)
		ON CREATE SET r.confidence = $confidence,
			r.created_at = $created_at,
			r.mentions = 1
		ON MATCH SET r.mentions = r.mentions + 1,
			r.confidence = CASE WHEN $confidence > r.confidence THEN $confidence ELSE r.confidence END
		RETURN r.mentions = 1 AS created, r.confidence AS confidence
	`

	GetRelationQuery = `
		MATCH (:Entity {name: $subject})-[r:RELATION {name: $relation}]->(:Entity {name: $object})
		RETURN r.confidence AS confidence, r.mentions AS mentions
	`

	CountEntitiesQuery = `
		MATCH (n:Entity)
		RETURN count(n) AS count
	`
)
