package dashboard

// Stats are the headline counts on the dashboard landing page. Offline is
// set when the backend could not be reached and all counts are zero.
type Stats struct {
	Services   int  `json:"services"`
	Categories int  `json:"categories"`
	Reviews    int  `json:"reviews"`
	Enquiries  int  `json:"enquiries"`
	Support    int  `json:"support"`
	Blogs      int  `json:"blogs"`
	Offline    bool `json:"offline"`
}
