package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus-метрики циклов сверки. Вынесены в отдельный пакет,
// чтобы их могли использовать и scheduler, и HTTP-эндпоинт в main.

var (
	CyclesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plu_cycles_total",
		Help: "Количество циклов сверки по результату (unchanged/already_present/updated/failed)",
	}, []string{"outcome"})

	EntriesReplacedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plu_entries_replaced_total",
		Help: "Количество удалённых устаревших записей prefix list'а",
	})

	LastUpdateTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plu_last_update_timestamp_seconds",
		Help: "Unix-время последнего успешного обновления prefix list'а",
	})
)

// Register регистрирует метрики в указанном registry (или в default, если nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{CyclesTotal, EntriesReplacedTotal, LastUpdateTimestamp} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
