package datalayer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "marketplace_datalayer_fallbacks_total",
	Help: "Количество чтений, отданных из запасного набора данных.",
}, []string{"entity"})
