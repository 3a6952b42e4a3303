package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_cache_hits_total",
		Help: "Количество попаданий в кеш по бэкендам.",
	}, []string{"backend"})

	misses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_cache_misses_total",
		Help: "Количество промахов кеша по бэкендам.",
	}, []string{"backend"})
)
