package queue

import (
	"context"
	"math"
	"time"

	"github.com/hibiken/asynq"
	"github.com/vendipos/backoffice-api/pkg/config"
	"github.com/vendipos/backoffice-api/pkg/logger"
)

// Server envuelve el servidor de asynq con la configuración de la cola de ventas.
type Server struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

// NewServer construye el servidor de workers. Procesa solo la cola de ventas,
// con backoff exponencial acotado para los fallos reintentables.
func NewServer(redisCfg config.RedisConfig, queueCfg config.QueueConfig, log *logger.Logger) *Server {
	srvLog := log.Component("queue-server")

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		},
		asynq.Config{
			Concurrency: queueCfg.Concurrency,
			Queues: map[string]int{
				QueueSales: 1,
			},
			RetryDelayFunc: backoffFunc(queueCfg.BaseBackoff, queueCfg.MaxBackoff),
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				srvLog.Warn().
					Str("task_type", task.Type()).
					Bool("terminal", IsTerminal(err)).
					Err(err).
					Msg("job fallido")
			}),
		},
	)

	return &Server{srv: srv, mux: asynq.NewServeMux()}
}

// Register asocia un tipo de task con su handler.
func (s *Server) Register(taskType string, h asynq.Handler) {
	s.mux.Handle(taskType, h)
}

// Run arranca el pool de workers y bloquea hasta recibir señal de parada;
// al recibirla espera a que los jobs en vuelo terminen.
func (s *Server) Run() error {
	return s.srv.Run(s.mux)
}

// backoffFunc devuelve base * 2^(n-1) acotado por max. El primer reintento
// espera base; a partir de ahí se duplica hasta el techo.
func backoffFunc(base, max time.Duration) asynq.RetryDelayFunc {
	return func(n int, err error, task *asynq.Task) time.Duration {
		if n < 1 {
			n = 1
		}
		delay := time.Duration(float64(base) * math.Pow(2, float64(n-1)))
		if delay > max || delay <= 0 {
			delay = max
		}
		return delay
	}
}
