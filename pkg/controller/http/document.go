package http

import (
	"net/http"

	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/usecase"
)

func registerDocumentHandler(uc *usecase.DocumentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req documentRequest
		files, err := decodeRequest(w, r, &req)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		var file *usecase.Attachment
		if len(files) > 0 {
			file = &files[0]
		}

		created, err := uc.RegisterDocument(r.Context(), req.toModel(), file)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toCreated(created, toDocument))
	}
}

func listDocumentsHandler(uc *usecase.DocumentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := listOptions(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		docs, err := uc.ListDocuments(r.Context(), opts...)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, convertAll(docs, toDocument))
	}
}

func getDocumentHandler(uc *usecase.DocumentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		doc, err := uc.GetDocument(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toDocument(doc))
	}
}

func changeDocumentStatusHandler(uc *usecase.DocumentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		var req statusRequest
		if _, err := decodeRequest(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		status, err := parseWith("status", req.Status, types.ParseDocumentStatus)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		doc, err := uc.ChangeDocumentStatus(r.Context(), id, status)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toDocument(doc))
	}
}

func reviewDueHandler(uc *usecase.DocumentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := uc.DueForReview(r.Context())
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, convertAll(docs, toDocument))
	}
}
