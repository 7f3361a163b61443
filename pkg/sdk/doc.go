// Package memvid provides a Go client for the memvid gateway gRPC API.
//
// The client wraps the memvid.v1 services with typed methods and maps
// transport status codes back to sentinel errors:
//
//	client, _ := memvid.New(ctx, "localhost:50051")
//	defer client.Close()
//
//	res, _ := client.Search(ctx, "engineering leadership", memvid.WithTopK(3))
//	for _, hit := range res.Hits {
//	    fmt.Println(hit.Title, hit.Score)
//	}
//
//	ans, _ := client.Ask(ctx, "what teams did you lead?")
//	state, _ := client.GetState(ctx, "__profile__", "")
package memvid
