package bootstrapper

const EventIndexName = "rum_events"

var eventIndex = map[string]interface{}{
	"settings": map[string]interface{}{
		"number_of_shards":   1,
		"number_of_replicas": 1,
	},
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"event_type": map[string]interface{}{
				"type": "keyword",
			},
			"application_id": map[string]interface{}{
				"type": "keyword",
			},
			"session_id": map[string]interface{}{
				"type": "keyword",
			},
			"view_id": map[string]interface{}{
				"type": "keyword",
			},
			"view_uri": map[string]interface{}{
				"type": "keyword",
			},
			"action_id": map[string]interface{}{
				"type": "keyword",
			},
			"action_type": map[string]interface{}{
				"type": "keyword",
			},
			"resource_name": map[string]interface{}{
				"type": "keyword",
			},
			"url": map[string]interface{}{
				"type": "keyword",
			},
			"method": map[string]interface{}{
				"type": "keyword",
			},
			"status_code": map[string]interface{}{
				"type": "long",
			},
			"message": map[string]interface{}{
				"type": "text",
			},
			"source": map[string]interface{}{
				"type": "keyword",
			},
			"timestamp": map[string]interface{}{
				"type": "date",
			},
			"time_spent": map[string]interface{}{
				"type": "long",
			},
			"loading_time": map[string]interface{}{
				"type": "long",
			},
			"duration": map[string]interface{}{
				"type": "long",
			},
			"action_count": map[string]interface{}{
				"type": "long",
			},
			"resource_count": map[string]interface{}{
				"type": "long",
			},
			"error_count": map[string]interface{}{
				"type": "long",
			},
			"version": map[string]interface{}{
				"type": "long",
			},
			"attributes": map[string]interface{}{
				"type": "object",
			},
		},
	},
}
