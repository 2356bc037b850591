package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.ListDocumentsActivity)
	w.RegisterActivity(a.FingerprintDocumentActivity)
	w.RegisterActivity(a.LoadMasterActivity)
	w.RegisterActivity(a.ExtractDocumentActivity)
	w.RegisterActivity(a.CompareActivity)
	w.RegisterActivity(a.WriteReportsActivity)
	w.RegisterActivity(a.UpsertRunActivity)
	w.RegisterActivity(a.UpdateRunStatusActivity)
}
