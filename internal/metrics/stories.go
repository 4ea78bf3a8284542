package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameStoryUpserts    = "story_upserts_total"
	NameTagReplacements = "tag_replacements_total"
	NameFavourites      = "favourite_updates_total"
)

var StoryUpserts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameStoryUpserts,
		Help:      "Story upserts by outcome",
		Namespace: Namespace,
	},
	[]string{LabelStatus},
)

var TagReplacements = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameTagReplacements,
		Help:      "Tag set replacements by outcome",
		Namespace: Namespace,
	},
	[]string{LabelStatus},
)

var FavouriteUpdates = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameFavourites,
		Help:      "Favourite updates by outcome",
		Namespace: Namespace,
	},
	[]string{LabelStatus},
)
