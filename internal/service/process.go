package service

import (
	"context"

	"github.com/infact-news/infact/internal/domain"
	"github.com/infact-news/infact/internal/mlclient"
)

// PipelineClient forwards article batches to the clustering pipeline.
type PipelineClient interface {
	Process(ctx context.Context, req *mlclient.ProcessRequest) (*mlclient.ProcessResponse, error)
}

// ImageFinder resolves a representative image for a cluster.
type ImageFinder interface {
	ForCluster(ctx context.Context, articles []*domain.Article, clusterName string) string
}

// ProcessService forwards batches to the clustering pipeline and, when
// an image provider is configured, backfills an image URL on each
// returned cluster.
type ProcessService struct {
	pipeline PipelineClient
	images   ImageFinder
}

// NewProcessService creates a new ProcessService. images may be nil,
// in which case clusters pass through without image enrichment.
func NewProcessService(pipeline PipelineClient, images ImageFinder) *ProcessService {
	return &ProcessService{pipeline: pipeline, images: images}
}

func (s *ProcessService) Process(ctx context.Context, req *mlclient.ProcessRequest) (*mlclient.ProcessResponse, error) {
	resp, err := s.pipeline.Process(ctx, req)
	if err != nil {
		return nil, err
	}
	if s.images == nil {
		return resp, nil
	}

	byURL := make(map[string]*domain.Article, len(req.Articles))
	for i := range req.Articles {
		p := req.Articles[i]
		if p.URL == "" {
			continue
		}
		byURL[p.URL] = &domain.Article{
			Title:    p.Title,
			Source:   p.Source,
			URL:      p.URL,
			ImageURL: p.ImageURL,
		}
	}

	for i := range resp.Clusters {
		c := &resp.Clusters[i]
		if c.ImageURL != "" {
			continue
		}
		members := make([]*domain.Article, 0, len(c.ArticleURLs))
		for _, u := range c.ArticleURLs {
			if a, ok := byURL[u]; ok {
				members = append(members, a)
			}
		}
		c.ImageURL = s.images.ForCluster(ctx, members, c.ClusterName)
	}
	return resp, nil
}
