// Package opensearch creates an opensearch-go client from environment
// configuration and provides a readiness probe. The catalog's OpenSearch
// backend runs its queries through the returned client.
//
//	client, err := opensearch.New(ctx, cfg)
//	if err != nil {
//	    return err // errors.Is(err, opensearch.ErrConnectionFailed)
//	}
//	parts := catalog.NewOpenSearch(client, catalog.OpenSearchConfig{})
package opensearch
