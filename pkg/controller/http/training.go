package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/usecase"
)

func scheduleTrainingHandler(uc *usecase.TrainingUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req trainingRequest
		files, err := decodeRequest(w, r, &req)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		var material *usecase.Attachment
		if len(files) > 0 {
			material = &files[0]
		}
		training, attendees := req.toModel()

		created, err := uc.ScheduleTraining(r.Context(), training, attendees, material)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toCreated(created, toTraining))
	}
}

func listTrainingsHandler(uc *usecase.TrainingUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := listOptions(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		var modality types.Modality
		if v := r.URL.Query().Get("modality"); v != "" {
			if modality, err = parseEnum("modality", v, types.Modality.IsValid); err != nil {
				writeError(r.Context(), w, err)
				return
			}
		}

		trainings, err := uc.ListTrainings(r.Context(), modality, opts...)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, convertAll(trainings, toTraining))
	}
}

func getTrainingHandler(uc *usecase.TrainingUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		training, err := uc.GetTraining(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toTraining(training))
	}
}

func changeTrainingStatusHandler(uc *usecase.TrainingUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		var req trainingStatusRequest
		if _, err := decodeRequest(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		status, err := parseWith("status", req.Status, types.ParseTrainingStatus)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		training, err := uc.ChangeTrainingStatus(r.Context(), id, status, req.NewDate)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toTraining(training))
	}
}

func listAttendeesHandler(uc *usecase.TrainingUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		attendees, err := uc.ListAttendees(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, convertAll(attendees, toAttendee))
	}
}

func recordAttendanceHandler(uc *usecase.TrainingUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		var req attendanceRequest
		if _, err := decodeRequest(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		records := make([]usecase.AttendanceInput, len(req.Records))
		for i, rec := range req.Records {
			records[i] = usecase.AttendanceInput{AttendeeID: rec.AttendeeID, Attended: rec.Attended, Score: rec.Score}
		}

		attendees, err := uc.RecordAttendance(r.Context(), id, records)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, convertAll(attendees, toAttendee))
	}
}

func uploadMaterialHandler(uc *usecase.TrainingUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		var req struct{}
		files, err := decodeRequest(w, r, &req)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		if len(files) == 0 {
			writeError(r.Context(), w, goerr.Wrap(model.ErrMissingField, "material file is required"))
			return
		}

		training, err := uc.UploadMaterial(r.Context(), id, files[0])
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toTraining(training))
	}
}

func trainingStatisticsHandler(uc *usecase.TrainingUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := listOptions(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		stats, err := uc.Statistics(r.Context(), opts...)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, trainingStatisticsResponse{
			Total:          stats.Total,
			ByType:         stats.ByType,
			ByStatus:       stats.ByStatus,
			TotalHours:     stats.TotalHours,
			AttendanceRate: stats.AttendanceRate,
		})
	}
}
