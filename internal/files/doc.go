// Package files discovers report files on disk.
//
// Discovery lists the published reports in a directory, oldest first, so
// health checks can describe what a previous run left behind:
//
//	discovery := files.NewDiscovery(paths.BaseDir)
//	reports, err := discovery.FindReports(paths.ReportsDir)
//	latest, ok := files.GetLatestFile(reports)
package files
