// Copyright Amazon.com Inc or its affiliates and the project contributors
// Written by James Shubin <purple@amazon.com> and the project contributors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.
//
// We will never require a CLA to submit a patch. All contributions follow the
// `inbound == outbound` rule.
//
// This is not an official Amazon product. Amazon does not offer support for
// this project.

package store

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"errors"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/opencodescan/scanengine/scancode"
	"github.com/opencodescan/scanengine/util/errwrap"
)

// DefaultRegion is used when S3Store.Region is empty.
const DefaultRegion = "us-east-1"

// GrantReadAllUsers is the canned ACL grantee that gives public read access.
const GrantReadAllUsers = "uri=http://acs.amazonaws.com/groups/global/AllUsers"

// S3Store archives results into an S3 bucket and hands back a presigned GET
// URL valid for a week (S3's maximum).
type S3Store struct {
	Debug bool
	Logf  func(format string, v ...interface{})

	Region       string
	BucketName   string
	CreateBucket bool

	// GrantReadAllUsers makes every archived object public. Only turn
	// this on for results you're comfortable with anyone finding.
	GrantReadAllUsers bool
}

func (obj *S3Store) logf(format string, v ...interface{}) {
	if obj.Logf != nil {
		obj.Logf(format, v...)
	}
}

func (obj *S3Store) region() string {
	if obj.Region != "" {
		return obj.Region
	}
	return DefaultRegion
}

// Put uploads result to S3 under a key built from the Configuration
// Serializer and returns a presigned URL good for a week.
func (obj *S3Store) Put(ctx context.Context, scannerName, configKey string, result *scancode.ScanResult) (string, error) {
	if obj.BucketName == "" {
		return "", errwrap.Wrapf(errors.New("empty bucket name"), "invalid S3Store")
	}

	data, err := marshal(result)
	if err != nil {
		return "", errwrap.Wrapf(err, "error marshalling result")
	}
	objectKey := objectName(scannerName, configKey)

	cfg, err := s3config.LoadDefaultConfig(ctx, s3config.WithRegion(obj.region()))
	if err != nil {
		return "", errwrap.Wrapf(err, "config error")
	}
	client := s3.NewFromConfig(cfg)

	if obj.CreateBucket {
		if obj.Debug {
			obj.logf("creating bucket %s...", obj.BucketName)
		}
		_, err := client.CreateBucket(ctx, &s3.CreateBucketInput{
			Bucket: &obj.BucketName,
			CreateBucketConfiguration: &s3types.CreateBucketConfiguration{
				LocationConstraint: s3types.BucketLocationConstraint(obj.region()),
			},
		})

		var bucketErr error
		for e := err; e != nil; e = errors.Unwrap(e) {
			bucketErr = e
			var owned *s3types.BucketAlreadyOwnedByYou
			if errors.As(e, &owned) {
				bucketErr = nil
				break
			}
		}
		if bucketErr != nil {
			return "", errwrap.Wrapf(bucketErr, "bucket creation issue")
		}
	}

	body := bytes.NewReader(data)
	h := md5.New()
	if _, err := io.Copy(h, body); err != nil {
		return "", errwrap.Wrapf(err, "copy to hash error")
	}
	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return "", errwrap.Wrapf(err, "seek error")
	}
	md5sum := base64.StdEncoding.EncodeToString(h.Sum(nil))

	putObjectInput := &s3.PutObjectInput{
		Bucket:       &obj.BucketName,
		Key:          &objectKey,
		Body:         body,
		ContentMD5:   &md5sum,
		ContentType:  aws.String("application/json"),
		StorageClass: s3types.StorageClassStandard,
	}
	if obj.GrantReadAllUsers {
		putObjectInput.GrantRead = aws.String(GrantReadAllUsers)
	}

	obj.logf("putting object %s...", objectKey)
	if _, err := client.PutObject(ctx, putObjectInput); err != nil {
		return "", errwrap.Wrapf(err, "put error")
	}

	presignClient := s3.NewPresignClient(client, s3.WithPresignExpires(7*24*time.Hour))
	presignResult, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(obj.BucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return "", errwrap.Wrapf(err, "presign error")
	}

	return presignResult.URL, nil
}
