// Package handlers содержит HTTP обработчики REST API аналитики сходов Формулы 1.
package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/analytics"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/dataset"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/logger"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/models"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Handlers содержит зависимости для обработки HTTP запросов.
// Снимок данных загружается до старта сервера и дальше только читается.
type Handlers struct {
	snap     *dataset.Snapshot
	circuit  analytics.CircuitOptions
	validate *validator.Validate
	log      *logger.Logger
}

// NewHandlers создает новый экземпляр Handlers.
func NewHandlers(snap *dataset.Snapshot, circuit analytics.CircuitOptions, log *logger.Logger) *Handlers {
	if snap == nil {
		snap = dataset.Empty()
	}
	return &Handlers{
		snap:     snap,
		circuit:  circuit,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log.WithComponent("handlers"),
	}
}

// Register регистрирует маршруты API в роутере.
func (h *Handlers) Register(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/circuit-data", h.CircuitData).Methods(http.MethodPost)
	api.HandleFunc("/pcp-data", h.PCPData).Methods(http.MethodGet)
	api.HandleFunc("/failure-cause-breakdown", h.FailureCauseBreakdown).Methods(http.MethodGet)
	api.HandleFunc("/team-reliability", h.TeamReliability).Methods(http.MethodPost)
	api.HandleFunc("/dnf-over-time", h.DNFOverTime).Methods(http.MethodGet)
	api.HandleFunc("/driver-experience", h.DriverExperience).Methods(http.MethodGet)
	api.HandleFunc("/tyre-engine-failures", h.TyreEngineFailures).Methods(http.MethodGet)
}

// CircuitData возвращает агрегаты сходов по трассам.
// Тело запроса не используется.
//
// @Summary      Сходы по трассам
// @Description  Для каждой трассы возвращает число записей, число сходов, процент сходов, все причины и три самые частые.
// @Tags         circuits
// @Produce      json
// @Success      200  {object}  models.Response{data=[]models.CircuitSummary}
// @Failure      500  {object}  models.ErrorResponse  "Внутренняя ошибка сервера"
// @Router       /api/circuit-data [post]
func (h *Handlers) CircuitData(w http.ResponseWriter, r *http.Request) {
	summaries, err := analytics.CircuitDNF(h.snap, h.circuit)
	if err != nil {
		h.fail(w, "circuit data", err)
		return
	}
	h.success(w, summaries)
}

// PCPData возвращает строки графика параллельных координат.
//
// @Summary      Данные графика параллельных координат
// @Description  Одна строка на запись набора; пустые категориальные значения заменены на "Unknown", пустые числовые на null.
// @Tags         charts
// @Produce      json
// @Success      200  {object}  models.Response{data=[]models.PCPRow}
// @Failure      500  {object}  models.ErrorResponse  "Внутренняя ошибка сервера"
// @Router       /api/pcp-data [get]
func (h *Handlers) PCPData(w http.ResponseWriter, r *http.Request) {
	h.success(w, analytics.ProjectPCP(h.snap))
}

// FailureCauseBreakdown возвращает доли причин схода.
//
// @Summary      Разбивка причин схода
// @Description  Причины схода по убыванию количества с долей в процентах. Значение "all" отключает фильтр.
// @Tags         failures
// @Produce      json
// @Param        season     query     string  false  "Сезон или all"
// @Param        circuitId  query     string  false  "Трасса или all"
// @Success      200        {object}  models.Response{data=[]models.FailureCause}
// @Failure      500        {object}  models.ErrorResponse  "Внутренняя ошибка сервера"
// @Router       /api/failure-cause-breakdown [get]
func (h *Handlers) FailureCauseBreakdown(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.FailureCauseFilter{
		Season:    query.Get("season"),
		CircuitID: query.Get("circuitId"),
	}
	if err := h.validate.Struct(filter); err != nil {
		h.fail(w, "failure cause breakdown", err)
		return
	}
	h.success(w, analytics.FailureCauses(h.snap, filter))
}

// TeamReliability возвращает рейтинг команд по числу сходов.
//
// @Summary      Надежность команд
// @Description  Сходы команд по выбранным сезонам, отсортированные по убыванию, со сводной статистикой.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        request  body      models.TeamReliabilityRequest  false  "Фильтры"
// @Success      200      {object}  models.Response{data=models.TeamReliabilityResult}
// @Failure      500      {object}  models.ErrorResponse  "Внутренняя ошибка сервера"
// @Router       /api/team-reliability [post]
func (h *Handlers) TeamReliability(w http.ResponseWriter, r *http.Request) {
	var req models.TeamReliabilityRequest
	if err := decodeBody(r.Body, &req); err != nil {
		h.fail(w, "team reliability", err)
		return
	}
	if err := h.validate.Struct(req.Filters); err != nil {
		h.fail(w, "team reliability", err)
		return
	}
	h.success(w, analytics.TeamReliability(h.snap, req.Filters))
}

// DNFOverTime возвращает число сходов по сезонам.
//
// @Summary      Сходы по сезонам
// @Description  Число записей и самая частая причина схода для каждого сезона.
// @Tags         charts
// @Produce      json
// @Success      200  {object}  models.Response{data=[]models.YearDNFs}
// @Failure      500  {object}  models.ErrorResponse  "Внутренняя ошибка сервера"
// @Router       /api/dnf-over-time [get]
func (h *Handlers) DNFOverTime(w http.ResponseWriter, r *http.Request) {
	h.success(w, analytics.DNFsOverTime(h.snap))
}

// DriverExperience сопоставляет сходы пилотов с их опытом.
//
// @Summary      Опыт пилотов и сходы
// @Description  Пилоты с числом сходов не меньше minDnfs, их основная причина схода и доля сходов от общего числа стартов.
// @Tags         drivers
// @Produce      json
// @Param        team     query     string   false  "Команда или all"
// @Param        minDnfs  query     integer  false  "Минимальное число сходов (по умолчанию 3)"
// @Success      200      {object}  models.Response{data=[]models.DriverExperience}
// @Failure      500      {object}  models.ErrorResponse  "Внутренняя ошибка сервера"
// @Router       /api/driver-experience [get]
func (h *Handlers) DriverExperience(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.DriverExperienceFilter{
		Team:    query.Get("team"),
		MinDNFs: analytics.DefaultMinDriverDNFs,
	}
	if raw := query.Get("minDnfs"); raw != "" {
		minDNFs, err := strconv.Atoi(raw)
		if err != nil {
			h.fail(w, "driver experience", fmt.Errorf("invalid minDnfs %q: %w", raw, err))
			return
		}
		filter.MinDNFs = minDNFs
	}
	if err := h.validate.Struct(filter); err != nil {
		h.fail(w, "driver experience", err)
		return
	}
	h.success(w, analytics.DriverExperience(h.snap, filter))
}

// TyreEngineFailures возвращает отказы шин и двигателей по производителям.
//
// @Summary      Отказы шин и двигателей
// @Description  Причины схода классифицируются по ключевым словам; возвращается до 8 производителей в каждой группе.
// @Tags         failures
// @Produce      json
// @Success      200  {object}  models.Response{data=models.TyreEngineFailures}
// @Failure      500  {object}  models.ErrorResponse  "Внутренняя ошибка сервера"
// @Router       /api/tyre-engine-failures [get]
func (h *Handlers) TyreEngineFailures(w http.ResponseWriter, r *http.Request) {
	h.success(w, analytics.TyreVsEngine(h.snap, analytics.DefaultManufacturerLimit))
}

// HealthCheck обрабатывает GET запрос на проверку работоспособности сервиса.
// Кроме статуса возвращает размер загруженного набора данных.
//
// @Summary      Проверка работоспособности сервиса
// @Description  Возвращает статус сервиса и число загруженных записей.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /health [get]
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"records":   h.snap.Len(),
		"grandPrix": h.snap.GrandPrixCount(),
		"loadedAt":  h.snap.LoadedAt(),
	})
}

func (h *Handlers) success(w http.ResponseWriter, data any) {
	body, err := json.Marshal(models.Response{Status: statusSuccess, Data: data})
	if err != nil {
		h.fail(w, "encode response", err)
		return
	}
	writeBody(w, http.StatusOK, body)
}

// fail логирует ошибку и отвечает конвертом ошибки с кодом 500.
func (h *Handlers) fail(w http.ResponseWriter, op string, err error) {
	h.log.Errorw("request failed", "operation", op, "error", err)
	writeError(w, err.Error())
}

func writeError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Status: statusError, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeBody(w, status, body)
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// decodeBody разбирает JSON тело запроса. Пустое тело оставляет v без изменений.
func decodeBody(body io.Reader, v any) error {
	if body == nil {
		return nil
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
